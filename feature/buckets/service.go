package buckets

import (
	"context"

	"objectstore/core/storage"

	"go.uber.org/zap"
)

// Service handles bucket operations.
type Service struct {
	client *storage.Client
	logger *zap.Logger
}

// NewService creates a new bucket service.
func NewService(client *storage.Client, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// List returns all buckets visible to the configured credentials.
func (s *Service) List(ctx context.Context) ([]storage.BucketInfo, error) {
	return s.client.ListBuckets(ctx)
}

// Create creates a new bucket.
func (s *Service) Create(ctx context.Context, name string) error {
	return s.client.CreateBucket(ctx, name)
}

// Exists checks whether a bucket exists.
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	return s.client.BucketExists(ctx, name)
}

// Remove removes a bucket, emptying it first when force is set.
func (s *Service) Remove(ctx context.Context, name string, force bool) error {
	return s.client.RemoveBucket(ctx, name, force)
}
