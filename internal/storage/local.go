package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidPath is returned for object names that escape the storage root
var ErrInvalidPath = errors.New("invalid file path")

// LocalStorageClient implements StorageClient on the local filesystem.
// Files are served back through signed URLs verified by VerifySignedURL.
type LocalStorageClient struct {
	basePath  string
	baseURL   string
	secretKey string
}

// NewLocalStorageClient creates the storage directory if needed. An empty
// baseURL means files are only reachable through the API.
func NewLocalStorageClient(basePath, baseURL, secretKey string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}

	if secretKey == "" {
		secretKey = "default-local-storage-key"
	}
	if baseURL == "" {
		baseURL = "internal://storage"
	}

	return &LocalStorageClient{
		basePath:  absBase,
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
	}, nil
}

// ResolvePath maps an object name to a file inside the storage root
func (l *LocalStorageClient) ResolvePath(objectName string) (string, error) {
	clean := filepath.Clean(strings.TrimLeft(objectName, "/\\"))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", ErrInvalidPath
	}
	full := filepath.Join(l.basePath, clean)
	if !strings.HasPrefix(full, l.basePath+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

func (l *LocalStorageClient) UploadFile(ctx context.Context, reader io.Reader, objectName, contentType string) (*UploadResult, error) {
	fullPath, err := l.ResolvePath(objectName)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer file.Close()

	size, err := io.Copy(file, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to write data to file: %w", err)
	}

	return &UploadResult{
		ObjectName: objectName,
		PublicURL:  fmt.Sprintf("%s/%s", l.baseURL, objectName),
		Size:       size,
	}, nil
}

func (l *LocalStorageClient) DeleteFile(ctx context.Context, objectName string) error {
	fullPath, err := l.ResolvePath(objectName)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	l.cleanEmptyDirs(filepath.Dir(fullPath))
	return nil
}

// cleanEmptyDirs removes empty parent directories up to basePath
func (l *LocalStorageClient) cleanEmptyDirs(dir string) {
	for dir != l.basePath && strings.HasPrefix(dir, l.basePath) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			break
		}
		os.Remove(dir)
		dir = filepath.Dir(dir)
	}
}

func (l *LocalStorageClient) ReadFile(ctx context.Context, objectName string) (io.ReadCloser, error) {
	fullPath, err := l.ResolvePath(objectName)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fullPath, err)
	}
	return file, nil
}

// GetSignedURL signs objectName with an expiry timestamp
func (l *LocalStorageClient) GetSignedURL(objectName string, expiry time.Duration) (string, error) {
	expiresAt := time.Now().Add(expiry).Unix()
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expiresAt, 10))
	q.Set("signature", l.sign(objectName, expiresAt))
	return fmt.Sprintf("%s/%s?%s", l.baseURL, objectName, q.Encode()), nil
}

func (l *LocalStorageClient) sign(objectName string, expiresAt int64) string {
	h := hmac.New(sha256.New, []byte(l.secretKey))
	fmt.Fprintf(h, "%s:%d", objectName, expiresAt)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignedURL checks the signature and that it has not expired
func (l *LocalStorageClient) VerifySignedURL(objectName string, expiresAt int64, signature string) bool {
	if time.Now().Unix() > expiresAt {
		return false
	}
	return hmac.Equal([]byte(signature), []byte(l.sign(objectName, expiresAt)))
}

// Served reports whether files are reachable through a public base URL
func (l *LocalStorageClient) Served() bool {
	return l.baseURL != "internal://storage"
}

func (l *LocalStorageClient) Close() error {
	return nil
}

var _ StorageClient = (*LocalStorageClient)(nil)
