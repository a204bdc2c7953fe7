package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

// MaxUploadSize caps multipart uploads
const MaxUploadSize = 25 << 20

var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".odt":  true,
	".rtf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type DocumentHandler struct {
	service *services.DocumentService
}

func NewDocumentHandler(service *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Upload stores an attachment and returns where it lives
// POST /api/v1/documents/upload (multipart: file, recordType, recordId)
func (h *DocumentHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		badRequest(c, "No file uploaded")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		badRequest(c, "Unsupported file type "+ext)
		return
	}

	doc, err := h.service.Upload(c.Request.Context(), file, header.Filename,
		header.Header.Get("Content-Type"), c.PostForm("recordType"), c.PostForm("recordId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "File uploaded successfully", "data": doc})
}

// SignedURL returns a fresh download link for a stored attachment
// GET /api/v1/documents/url?path=documents/form16/...
func (h *DocumentHandler) SignedURL(c *gin.Context) {
	url, err := h.service.SignedURL(c.Query("path"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"url": url}})
}
