package storage

import "time"

// BucketInfo describes a bucket as reported by the storage service.
type BucketInfo struct {
	// Name is the bucket name, globally unique per storage account.
	Name string `json:"name"`
	// CreatedAt is the bucket creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// ObjectInfo describes one entry of a bucket listing.
type ObjectInfo struct {
	// Key is the object name within its bucket.
	Key string `json:"key"`
	// Size is the payload size in bytes.
	Size int64 `json:"size"`
	// LastModified is the time of the last write to the object.
	LastModified time.Time `json:"last_modified"`
	// ETag is the entity tag assigned by the service.
	ETag string `json:"etag,omitempty"`
}

// ObjectStat holds object metadata without the payload.
type ObjectStat struct {
	ContentType  string            `json:"content_type"`
	Size         int64             `json:"size"`
	ETag         string            `json:"etag,omitempty"`
	LastModified time.Time         `json:"last_modified"`
	VersionID    string            `json:"version_id,omitempty"`
	UserMetadata map[string]string `json:"user_metadata,omitempty"`
}

// UploadResult identifies the stored object after a write.
type UploadResult struct {
	ETag      string `json:"etag"`
	VersionID string `json:"version_id,omitempty"`
}

// RemoveResult reports the failure of a single key during batch removal.
// Batch removal is not atomic; keys absent from the result list were removed.
type RemoveResult struct {
	Key string `json:"key"`
	Err error  `json:"-"`
}

// UploadOptions carries optional attributes attached at upload time.
// Attributes are not preserved across overwrites unless re-specified.
type UploadOptions struct {
	// ContentType of the payload. Defaults to application/octet-stream
	// on the service side when empty.
	ContentType string
	// Metadata is user metadata stored with the object.
	Metadata map[string]string
	// Tags are object tags stored with the object.
	Tags map[string]string
}
