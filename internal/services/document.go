package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"LF-ADMIN/internal/metrics"
	"LF-ADMIN/internal/storage"

	"go.uber.org/zap"
)

// convertible lists office formats turned into PDF before they are stored
var convertible = map[string]bool{
	".doc":  true,
	".docx": true,
	".odt":  true,
	".rtf":  true,
}

// UploadedDocument is the upload response. Callers read whichever of URL,
// FilePath or Attachment they know about.
type UploadedDocument struct {
	URL        string `json:"url"`
	FilePath   string `json:"filePath"`
	Attachment string `json:"attachment"`
	Size       int64  `json:"size"`
	Converted  bool   `json:"converted"`
}

// DocumentService stores uploaded attachments
type DocumentService struct {
	storageClient storage.StorageClient
	storageName   string
	converter     PDFConverter
	log           *zap.Logger
	// URLExpiry is how long returned signed URLs stay valid
	URLExpiry time.Duration
}

// NewDocumentService creates the service; converter may be nil to store files as uploaded
func NewDocumentService(storageClient storage.StorageClient, storageName string, converter PDFConverter, log *zap.Logger) *DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentService{
		storageClient: storageClient,
		storageName:   storageName,
		converter:     converter,
		log:           log,
		URLExpiry:     24 * time.Hour,
	}
}

// Upload stores a file under the record it belongs to. Office documents are
// converted to PDF first when a converter is configured.
func (s *DocumentService) Upload(ctx context.Context, r io.Reader, filename, contentType, recordType, recordID string) (*UploadedDocument, error) {
	converted := false
	ext := strings.ToLower(filepath.Ext(filename))
	if s.converter != nil && convertible[ext] {
		pdf, err := s.converter.ConvertToPDF(ctx, r, filename)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s to PDF: %w", filename, err)
		}
		defer pdf.Close()
		r = pdf
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".pdf"
		contentType = "application/pdf"
		converted = true
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := storage.GenerateDocumentObjectName(recordType, recordID, filename)
	result, err := s.storageClient.UploadFile(ctx, r, objectName, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}
	metrics.DocumentsUploaded.WithLabelValues(s.storageName, strconv.FormatBool(converted)).Inc()

	url, err := s.storageClient.GetSignedURL(result.ObjectName, s.URLExpiry)
	if err != nil {
		s.log.Warn("failed to sign document url", zap.String("object", result.ObjectName), zap.Error(err))
		url = result.PublicURL
	}

	s.log.Info("document uploaded",
		zap.String("object", result.ObjectName),
		zap.Int64("size", result.Size),
		zap.Bool("converted", converted))

	return &UploadedDocument{
		URL:        url,
		FilePath:   result.ObjectName,
		Attachment: result.ObjectName,
		Size:       result.Size,
		Converted:  converted,
	}, nil
}

// SignedURL returns a fresh download link for a stored document
func (s *DocumentService) SignedURL(objectName string) (string, error) {
	if strings.TrimSpace(objectName) == "" {
		return "", ErrNotFound
	}
	return s.storageClient.GetSignedURL(objectName, s.URLExpiry)
}

// Delete removes a stored document
func (s *DocumentService) Delete(ctx context.Context, objectName string) error {
	if err := s.storageClient.DeleteFile(ctx, objectName); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
