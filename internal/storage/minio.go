package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient implements StorageClient on an S3 compatible MinIO bucket
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient connects to MinIO and creates the bucket when it is missing
func NewMinIOClient(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinIOClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	return &MinIOClient{client: client, bucket: bucket}, nil
}

// UploadFile streams reader into the bucket with an unknown size
func (m *MinIOClient) UploadFile(ctx context.Context, reader io.Reader, objectName, contentType string) (*UploadResult, error) {
	info, err := m.client.PutObject(ctx, m.bucket, objectName, reader, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return &UploadResult{
		ObjectName: objectName,
		PublicURL:  fmt.Sprintf("%s/%s/%s", m.client.EndpointURL().String(), m.bucket, objectName),
		Size:       info.Size,
	}, nil
}

func (m *MinIOClient) DeleteFile(ctx context.Context, objectName string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete MinIO object %s: %w", objectName, err)
	}
	return nil
}

func (m *MinIOClient) ReadFile(ctx context.Context, objectName string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read MinIO object %s: %w", objectName, err)
	}
	return obj, nil
}

// GetSignedURL returns a presigned GET URL
func (m *MinIOClient) GetSignedURL(objectName string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(context.Background(), m.bucket, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign MinIO URL: %w", err)
	}
	return u.String(), nil
}

// Close is a no-op; the MinIO client holds no long-lived connections of its own
func (m *MinIOClient) Close() error {
	return nil
}

var _ StorageClient = (*MinIOClient)(nil)
