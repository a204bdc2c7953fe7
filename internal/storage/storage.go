package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// StorageClient is the interface for file storage operations.
// Local, GCS and MinIO implementations must implement this interface.
type StorageClient interface {
	UploadFile(ctx context.Context, reader io.Reader, objectName, contentType string) (*UploadResult, error)
	DeleteFile(ctx context.Context, objectName string) error
	ReadFile(ctx context.Context, objectName string) (io.ReadCloser, error)
	GetSignedURL(objectName string, expiry time.Duration) (string, error)
	Close() error
}

// UploadResult contains the result of an upload operation
type UploadResult struct {
	ObjectName string `json:"object_name"`
	PublicURL  string `json:"public_url"`
	Size       int64  `json:"size"`
}

// GenerateDocumentObjectName places an upload under the record it belongs to,
// e.g. documents/form16/<id>/<unix>_<name>. Records without an id go under "unassigned".
func GenerateDocumentObjectName(recordType, recordID, filename string) string {
	if recordType == "" {
		recordType = "general"
	}
	if recordID == "" {
		recordID = "unassigned"
	}
	return fmt.Sprintf("documents/%s/%s/%d_%s",
		sanitizeSegment(recordType), sanitizeSegment(recordID), time.Now().Unix(), sanitizeSegment(path.Base(filename)))
}

// sanitizeSegment keeps object names free of path separators and spaces
func sanitizeSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("/", "_", "\\", "_", " ", "_", "..", "_").Replace(s)
	if s == "" {
		return "file"
	}
	return s
}
