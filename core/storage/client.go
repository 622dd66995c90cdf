package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Client performs bucket and object CRUD operations against a single
// storage endpoint. It is a stateless facade: nothing is cached between
// calls, every read is a fresh round trip, and the configuration is fixed
// at construction time. Errors from the storage service are returned
// unchanged so callers can inspect them with minio.ToErrorResponse.
type Client struct {
	backend Backend
	region  string
	logger  *zap.Logger
}

// NewClient creates a new storage client based on the configuration.
// Construction only validates the endpoint locally; no connectivity
// check is performed. Use IsConnected to probe the service.
func NewClient(cfg Config, logg *zap.Logger) (*Client, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration, // Wait for first response byte timeout
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	if logg == nil {
		logg = zap.NewNop()
	}

	return &Client{
		backend: &minioBackend{Client: minioClient},
		region:  cfg.Region,
		logger:  logg,
	}, nil
}

// NewFromBackend wraps an existing backend. Used by tests to inject a
// mocked SDK surface.
func NewFromBackend(b Backend, logg *zap.Logger) *Client {
	if logg == nil {
		logg = zap.NewNop()
	}
	return &Client{backend: b, logger: logg}
}

// ===== Bucket Operations =====

// CreateBucket creates a new bucket. The request is forwarded directly:
// creating a bucket that already exists is the service's error, passed
// through to the caller.
func (c *Client) CreateBucket(ctx context.Context, bucketName string) error {
	if err := c.backend.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: c.region}); err != nil {
		return err
	}
	c.logger.Info("Created bucket", zap.String("bucket", bucketName))
	return nil
}

// ListBuckets lists all buckets. Ordering is whatever the service returns.
func (c *Client) ListBuckets(ctx context.Context) ([]BucketInfo, error) {
	buckets, err := c.backend.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]BucketInfo, 0, len(buckets))
	for _, b := range buckets {
		infos = append(infos, BucketInfo{Name: b.Name, CreatedAt: b.CreationDate})
	}
	return infos, nil
}

// BucketExists checks if a bucket exists. One round trip, no side effect.
func (c *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return c.backend.BucketExists(ctx, bucketName)
}

// RemoveBucket removes a bucket. Without force, removal of a non-empty
// bucket fails with the service's BucketNotEmpty error. With force, all
// contained objects are removed first. The forced variant is two-phase
// and not atomic: a failure partway leaves some objects deleted and the
// bucket still present.
func (c *Client) RemoveBucket(ctx context.Context, bucketName string, force bool) error {
	if force {
		objects, err := c.ListObjects(ctx, bucketName, "")
		if err != nil {
			return err
		}
		if len(objects) > 0 {
			keys := make([]string, 0, len(objects))
			for _, obj := range objects {
				keys = append(keys, obj.Key)
			}
			if failed := c.RemoveObjects(ctx, bucketName, keys); len(failed) > 0 {
				c.logger.Error("Failed to empty bucket before removal",
					zap.String("bucket", bucketName),
					zap.String("key", failed[0].Key),
					zap.Error(failed[0].Err),
				)
				return failed[0].Err
			}
		}
	}

	if err := c.backend.RemoveBucket(ctx, bucketName); err != nil {
		return err
	}
	c.logger.Info("Removed bucket", zap.String("bucket", bucketName))
	return nil
}

// ===== Object Operations =====

// Upload writes a whole object from a stream. The target bucket must
// already exist. Metadata and tags from opts are attached at upload time.
func (c *Client) Upload(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, opts UploadOptions) (UploadResult, error) {
	info, err := c.backend.PutObject(ctx, bucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.Metadata,
		UserTags:     opts.Tags,
	})
	if err != nil {
		return UploadResult{}, err
	}
	c.logger.Info("Uploaded object",
		zap.String("bucket", bucketName),
		zap.String("key", objectName),
		zap.Int64("size", info.Size),
	)
	return UploadResult{ETag: info.ETag, VersionID: info.VersionID}, nil
}

// UploadBytes writes a whole object from an in-memory payload.
func (c *Client) UploadBytes(ctx context.Context, bucketName, objectName string, data []byte, opts UploadOptions) (UploadResult, error) {
	return c.Upload(ctx, bucketName, objectName, bytes.NewReader(data), int64(len(data)), opts)
}

// UploadString writes a whole object from a string payload. The content
// type defaults to text/plain when not specified.
func (c *Client) UploadString(ctx context.Context, bucketName, objectName, data string, opts UploadOptions) (UploadResult, error) {
	if opts.ContentType == "" {
		opts.ContentType = "text/plain"
	}
	return c.UploadBytes(ctx, bucketName, objectName, []byte(data), opts)
}

// Download reads the full object payload together with its metadata.
func (c *Client) Download(ctx context.Context, bucketName, objectName string) ([]byte, ObjectStat, error) {
	stat, err := c.StatObject(ctx, bucketName, objectName)
	if err != nil {
		return nil, ObjectStat{}, err
	}

	obj, err := c.backend.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectStat{}, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, ObjectStat{}, err
	}
	return data, stat, nil
}

// ListObjects lists objects in a bucket, optionally filtered by key
// prefix. No pagination contract beyond what the service exposes.
func (c *Client) ListObjects(ctx context.Context, bucketName, prefix string) ([]ObjectInfo, error) {
	ch := c.backend.ListObjects(ctx, bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var infos []ObjectInfo
	for obj := range ch {
		if obj.Err != nil {
			return nil, obj.Err
		}
		infos = append(infos, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			ETag:         strings.Trim(obj.ETag, `"`),
		})
	}
	return infos, nil
}

// ObjectExists checks if an object exists. A missing key yields
// (false, nil); any other failure is passed through.
func (c *Client) ObjectExists(ctx context.Context, bucketName, objectName string) (bool, error) {
	_, err := c.backend.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// StatObject fetches content type, size and user metadata without
// transferring the payload.
func (c *Client) StatObject(ctx context.Context, bucketName, objectName string) (ObjectStat, error) {
	stat, err := c.backend.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		return ObjectStat{}, err
	}
	return ObjectStat{
		ContentType:  stat.ContentType,
		Size:         stat.Size,
		ETag:         strings.Trim(stat.ETag, `"`),
		LastModified: stat.LastModified,
		VersionID:    stat.VersionID,
		UserMetadata: stat.UserMetadata,
	}, nil
}

// Update overwrites an object with a new payload. Updates are whole-object
// writes: prior metadata and tags are not preserved unless re-specified
// in opts.
func (c *Client) Update(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, opts UploadOptions) (UploadResult, error) {
	return c.Upload(ctx, bucketName, objectName, reader, size, opts)
}

// Copy performs a server-side copy. Fails with the service's error if
// the source does not exist.
func (c *Client) Copy(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) (UploadResult, error) {
	info, err := c.backend.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: dstBucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: srcBucket, Object: srcKey},
	)
	if err != nil {
		return UploadResult{}, err
	}
	c.logger.Info("Copied object",
		zap.String("source", srcBucket+"/"+srcKey),
		zap.String("destination", dstBucket+"/"+dstKey),
	)
	return UploadResult{ETag: info.ETag, VersionID: info.VersionID}, nil
}

// RemoveObject removes a single object.
func (c *Client) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	if err := c.backend.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		return err
	}
	c.logger.Info("Removed object", zap.String("bucket", bucketName), zap.String("key", objectName))
	return nil
}

// RemoveObjects removes a batch of keys. Removal is not atomic: the
// returned slice holds one entry per key that failed, and an empty slice
// means every key was removed.
func (c *Client) RemoveObjects(ctx context.Context, bucketName string, keys []string) []RemoveResult {
	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var failed []RemoveResult
	for rerr := range c.backend.RemoveObjects(ctx, bucketName, objectsCh, minio.RemoveObjectsOptions{}) {
		failed = append(failed, RemoveResult{Key: rerr.ObjectName, Err: rerr.Err})
	}

	if len(failed) == 0 {
		c.logger.Info("Removed objects", zap.String("bucket", bucketName), zap.Int("count", len(keys)))
	} else {
		c.logger.Warn("Removed objects with failures",
			zap.String("bucket", bucketName),
			zap.Int("count", len(keys)),
			zap.Int("failed", len(failed)),
		)
	}
	return failed
}

// ===== Utility Operations =====

// PresignedGetURL returns a time-limited URL granting read access to an
// object without credentials. The service caps expiry at seven days.
func (c *Client) PresignedGetURL(ctx context.Context, bucketName, objectName string, expires time.Duration) (string, error) {
	u, err := c.backend.PresignedGetObject(ctx, bucketName, objectName, expires, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// IsConnected probes the storage service with a lightweight round trip.
// Any failure is downgraded to false rather than propagated.
func (c *Client) IsConnected(ctx context.Context) bool {
	if _, err := c.backend.ListBuckets(ctx); err != nil {
		c.logger.Warn("Storage service unreachable", zap.Error(err))
		return false
	}
	return true
}
