package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSClient implements StorageClient on a Google Cloud Storage bucket
type GCSClient struct {
	client     *gcs.Client
	bucketName string
	projectID  string
}

// NewGCSClient creates a GCS client. Without a credentials file the
// application default credentials are used.
func NewGCSClient(ctx context.Context, bucketName, projectID, credentialsPath string) (*GCSClient, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("GCS bucket name is required")
	}

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client:     client,
		bucketName: bucketName,
		projectID:  projectID,
	}, nil
}

// UploadFile streams reader into the bucket
func (g *GCSClient) UploadFile(ctx context.Context, reader io.Reader, objectName, contentType string) (*UploadResult, error) {
	writer := g.client.Bucket(g.bucketName).Object(objectName).NewWriter(ctx)
	writer.ContentType = contentType

	size, err := io.Copy(writer, reader)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to upload to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize GCS upload: %w", err)
	}

	return &UploadResult{
		ObjectName: objectName,
		PublicURL:  fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucketName, objectName),
		Size:       size,
	}, nil
}

// DeleteFile removes an object; a missing object is not an error
func (g *GCSClient) DeleteFile(ctx context.Context, objectName string) error {
	err := g.client.Bucket(g.bucketName).Object(objectName).Delete(ctx)
	if err != nil && err != gcs.ErrObjectNotExist {
		return fmt.Errorf("failed to delete GCS object %s: %w", objectName, err)
	}
	return nil
}

// ReadFile opens an object for reading
func (g *GCSClient) ReadFile(ctx context.Context, objectName string) (io.ReadCloser, error) {
	reader, err := g.client.Bucket(g.bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read GCS object %s: %w", objectName, err)
	}
	return reader, nil
}

// GetSignedURL returns a V4 signed GET URL
func (g *GCSClient) GetSignedURL(objectName string, expiry time.Duration) (string, error) {
	url, err := g.client.Bucket(g.bucketName).SignedURL(objectName, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign GCS URL: %w", err)
	}
	return url, nil
}

func (g *GCSClient) Close() error {
	return g.client.Close()
}

var _ StorageClient = (*GCSClient)(nil)
