package objects

import (
	"context"
	"io"
	"time"

	"objectstore/core/storage"

	"go.uber.org/zap"
)

// Service handles object operations.
type Service struct {
	client *storage.Client
	logger *zap.Logger
}

// NewService creates a new object service.
func NewService(client *storage.Client, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// List returns objects in a bucket, optionally filtered by key prefix.
func (s *Service) List(ctx context.Context, bucket, prefix string) ([]storage.ObjectInfo, error) {
	return s.client.ListObjects(ctx, bucket, prefix)
}

// Upload stores a whole object.
func (s *Service) Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts storage.UploadOptions) (storage.UploadResult, error) {
	return s.client.Upload(ctx, bucket, key, reader, size, opts)
}

// Download returns the full payload and its metadata.
func (s *Service) Download(ctx context.Context, bucket, key string) ([]byte, storage.ObjectStat, error) {
	return s.client.Download(ctx, bucket, key)
}

// Stat returns object metadata without the payload.
func (s *Service) Stat(ctx context.Context, bucket, key string) (storage.ObjectStat, error) {
	return s.client.StatObject(ctx, bucket, key)
}

// Exists checks whether an object exists.
func (s *Service) Exists(ctx context.Context, bucket, key string) (bool, error) {
	return s.client.ObjectExists(ctx, bucket, key)
}

// Copy performs a server-side copy into bucket/key.
func (s *Service) Copy(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) (storage.UploadResult, error) {
	return s.client.Copy(ctx, srcBucket, srcKey, dstBucket, dstKey)
}

// Remove deletes a single object.
func (s *Service) Remove(ctx context.Context, bucket, key string) error {
	return s.client.RemoveObject(ctx, bucket, key)
}

// RemoveBatch deletes multiple keys, returning one entry per failure.
func (s *Service) RemoveBatch(ctx context.Context, bucket string, keys []string) []storage.RemoveResult {
	return s.client.RemoveObjects(ctx, bucket, keys)
}

// PresignURL returns a time-limited access URL for an object.
func (s *Service) PresignURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	return s.client.PresignedGetURL(ctx, bucket, key, expires)
}
