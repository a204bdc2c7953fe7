package handlers

import (
	"net/http"

	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

type Form16Handler struct {
	service *services.Form16Service
}

func NewForm16Handler(service *services.Form16Service) *Form16Handler {
	return &Form16Handler{service: service}
}

// GetAll lists Form16 and TDS documents
// GET /api/v1/form16?agentId=&status=&search=
func (h *Form16Handler) GetAll(c *gin.Context) {
	docs, err := h.service.GetAll(listFilter(c), c.Query("agentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": docs, "total": len(docs)})
}

// GET /api/v1/form16/:id
func (h *Form16Handler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": doc})
}

// POST /api/v1/form16
func (h *Form16Handler) Create(c *gin.Context) {
	var req services.Form16Input
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	doc, err := h.service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Form16 document created successfully", "data": doc})
}

// PUT /api/v1/form16/:id
func (h *Form16Handler) Update(c *gin.Context) {
	var req services.Form16Input
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	doc, err := h.service.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Form16 document updated successfully", "data": doc})
}

// DELETE /api/v1/form16/:id
func (h *Form16Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Form16 document deleted successfully"})
}
