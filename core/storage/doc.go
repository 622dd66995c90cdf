// Package storage provides a thin client facade over MinIO and other
// S3-compatible object storage services.
//
// It wraps the MinIO Go client to expose CRUD-shaped bucket and object
// operations, presigned URLs, and a connectivity probe. The facade is
// stateless: it caches nothing between calls and adds no retries,
// batching, or consistency guarantees beyond what the service provides.
//
// # Configuration
//
// Connection settings resolve in a fixed precedence order: explicit
// options passed to Resolve, then MINIO_* environment variables, then
// built-in defaults matching a local MinIO deployment
// (localhost:9000, minioadmin/minioadmin, insecure, no region).
//
// # Backend Interface
//
// The Backend interface mirrors the SDK call surface and makes storage
// interactions mockable in unit tests (see core/storage/mocks).
//
// # Errors
//
// Failures from the storage service are returned unchanged, so callers
// can inspect them with minio.ToErrorResponse. The only exceptions are
// ObjectExists, which maps a missing key to (false, nil), and
// IsConnected, which downgrades any failure to false.
//
// # Usage
//
//	client, err := storage.NewClient(storage.Resolve(), logger)
//	err = client.CreateBucket(ctx, "test-bucket")
//	_, err = client.UploadString(ctx, "test-bucket", "hello.txt", "hello", storage.UploadOptions{})
package storage
