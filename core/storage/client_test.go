package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"objectstore/core/storage"
	"objectstore/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg, nil)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		client, err := storage.NewClient(cfg, nil)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg, nil)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func objectChannel(objects ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		ch <- obj
	}
	close(ch)
	return ch
}

func removeErrChannel(errs ...minio.RemoveObjectError) <-chan minio.RemoveObjectError {
	ch := make(chan minio.RemoveObjectError, len(errs))
	for _, e := range errs {
		ch <- e
	}
	close(ch)
	return ch
}

func TestCreateBucket(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("MakeBucket", mock.Anything, "test-bucket", minio.MakeBucketOptions{Region: ""}).Return(nil)

		client := storage.NewFromBackend(backend, nil)
		err := client.CreateBucket(context.Background(), "test-bucket")

		assert.NoError(t, err)
		backend.AssertExpectations(t)
	})

	t.Run("AlreadyExistsPassesThrough", func(t *testing.T) {
		svcErr := minio.ErrorResponse{Code: "BucketAlreadyOwnedByYou", Message: "already owned"}
		backend := new(mocks.Backend)
		backend.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(svcErr)

		client := storage.NewFromBackend(backend, nil)
		err := client.CreateBucket(context.Background(), "test-bucket")

		require.Error(t, err)
		assert.Equal(t, "BucketAlreadyOwnedByYou", minio.ToErrorResponse(err).Code)
	})
}

func TestListBuckets(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	backend := new(mocks.Backend)
	backend.On("ListBuckets", mock.Anything).Return([]minio.BucketInfo{
		{Name: "alpha", CreationDate: created},
		{Name: "beta", CreationDate: created.Add(time.Hour)},
	}, nil)

	client := storage.NewFromBackend(backend, nil)
	buckets, err := client.ListBuckets(context.Background())

	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "alpha", buckets[0].Name)
	assert.Equal(t, created, buckets[0].CreatedAt)
	assert.Equal(t, "beta", buckets[1].Name)
}

func TestRemoveBucket(t *testing.T) {
	t.Run("NonEmptyWithoutForce", func(t *testing.T) {
		svcErr := minio.ErrorResponse{Code: "BucketNotEmpty", Message: "bucket not empty"}
		backend := new(mocks.Backend)
		backend.On("RemoveBucket", mock.Anything, "test-bucket").Return(svcErr)

		client := storage.NewFromBackend(backend, nil)
		err := client.RemoveBucket(context.Background(), "test-bucket", false)

		require.Error(t, err)
		assert.Equal(t, "BucketNotEmpty", minio.ToErrorResponse(err).Code)
	})

	t.Run("ForceRemovesObjectsFirst", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).
			Return(objectChannel(
				minio.ObjectInfo{Key: "a.txt"},
				minio.ObjectInfo{Key: "b.txt"},
			))

		var removed []string
		backend.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				ch := args.Get(2).(<-chan minio.ObjectInfo)
				for obj := range ch {
					removed = append(removed, obj.Key)
				}
			}).
			Return(removeErrChannel())
		backend.On("RemoveBucket", mock.Anything, "test-bucket").Return(nil)

		client := storage.NewFromBackend(backend, nil)
		err := client.RemoveBucket(context.Background(), "test-bucket", true)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, removed)
		backend.AssertExpectations(t)
	})

	t.Run("ForceStopsWhenEmptyingFails", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).
			Return(objectChannel(minio.ObjectInfo{Key: "a.txt"}))
		backend.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
			Return(removeErrChannel(minio.RemoveObjectError{
				ObjectName: "a.txt",
				Err:        errors.New("access denied"),
			}))

		client := storage.NewFromBackend(backend, nil)
		err := client.RemoveBucket(context.Background(), "test-bucket", true)

		require.Error(t, err)
		backend.AssertNotCalled(t, "RemoveBucket", mock.Anything, "test-bucket")
	})
}

func TestUpload(t *testing.T) {
	t.Run("ForwardsOptions", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("PutObject", mock.Anything, "test-bucket", "hello.txt", mock.Anything, int64(5),
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
				return opts.ContentType == "text/plain" &&
					opts.UserMetadata["owner"] == "tests" &&
					opts.UserTags["env"] == "dev"
			})).
			Return(minio.UploadInfo{ETag: "abc123", Size: 5}, nil)

		client := storage.NewFromBackend(backend, nil)
		result, err := client.UploadBytes(context.Background(), "test-bucket", "hello.txt", []byte("hello"), storage.UploadOptions{
			ContentType: "text/plain",
			Metadata:    map[string]string{"owner": "tests"},
			Tags:        map[string]string{"env": "dev"},
		})

		require.NoError(t, err)
		assert.Equal(t, "abc123", result.ETag)
		backend.AssertExpectations(t)
	})

	t.Run("StringDefaultsToTextPlain", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("PutObject", mock.Anything, "test-bucket", "hello.txt", mock.Anything, int64(5),
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
				return opts.ContentType == "text/plain"
			})).
			Return(minio.UploadInfo{ETag: "abc123"}, nil)

		client := storage.NewFromBackend(backend, nil)
		_, err := client.UploadString(context.Background(), "test-bucket", "hello.txt", "hello", storage.UploadOptions{})

		require.NoError(t, err)
		backend.AssertExpectations(t)
	})

	t.Run("MissingBucketPassesThrough", func(t *testing.T) {
		svcErr := minio.ErrorResponse{Code: "NoSuchBucket", Message: "bucket does not exist"}
		backend := new(mocks.Backend)
		backend.On("PutObject", mock.Anything, "missing", "hello.txt", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, svcErr)

		client := storage.NewFromBackend(backend, nil)
		_, err := client.UploadBytes(context.Background(), "missing", "hello.txt", []byte("hello"), storage.UploadOptions{})

		require.Error(t, err)
		assert.Equal(t, "NoSuchBucket", minio.ToErrorResponse(err).Code)
	})
}

func TestDownload(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		modified := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		backend := new(mocks.Backend)
		backend.On("StatObject", mock.Anything, "test-bucket", "hello.txt", mock.Anything).
			Return(minio.ObjectInfo{
				ContentType:  "text/plain",
				Size:         5,
				ETag:         "abc123",
				LastModified: modified,
				UserMetadata: minio.StringMap{"owner": "tests"},
			}, nil)
		backend.On("GetObject", mock.Anything, "test-bucket", "hello.txt", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("hello"))), nil)

		client := storage.NewFromBackend(backend, nil)
		data, stat, err := client.Download(context.Background(), "test-bucket", "hello.txt")

		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
		assert.Equal(t, "text/plain", stat.ContentType)
		assert.Equal(t, int64(5), stat.Size)
		assert.Equal(t, "abc123", stat.ETag)
		assert.Equal(t, "tests", stat.UserMetadata["owner"])
	})

	t.Run("NotFound", func(t *testing.T) {
		svcErr := minio.ErrorResponse{Code: "NoSuchKey", Message: "key does not exist"}
		backend := new(mocks.Backend)
		backend.On("StatObject", mock.Anything, "test-bucket", "missing.txt", mock.Anything).
			Return(minio.ObjectInfo{}, svcErr)

		client := storage.NewFromBackend(backend, nil)
		_, _, err := client.Download(context.Background(), "test-bucket", "missing.txt")

		require.Error(t, err)
		assert.Equal(t, "NoSuchKey", minio.ToErrorResponse(err).Code)
	})
}

func TestListObjects(t *testing.T) {
	t.Run("ForwardsPrefix", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("ListObjects", mock.Anything, "test-bucket",
			mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == "a/" && opts.Recursive
			})).
			Return(objectChannel(
				minio.ObjectInfo{Key: "a/one.txt", Size: 3},
				minio.ObjectInfo{Key: "a/two.txt", Size: 7},
			))

		client := storage.NewFromBackend(backend, nil)
		objects, err := client.ListObjects(context.Background(), "test-bucket", "a/")

		require.NoError(t, err)
		require.Len(t, objects, 2)
		assert.Equal(t, "a/one.txt", objects[0].Key)
		assert.Equal(t, int64(7), objects[1].Size)
	})

	t.Run("ListingErrorPropagates", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("ListObjects", mock.Anything, "missing", mock.Anything).
			Return(objectChannel(minio.ObjectInfo{Err: errors.New("no such bucket")}))

		client := storage.NewFromBackend(backend, nil)
		_, err := client.ListObjects(context.Background(), "missing", "")

		assert.Error(t, err)
	})
}

func TestObjectExists(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("StatObject", mock.Anything, "test-bucket", "hello.txt", mock.Anything).
			Return(minio.ObjectInfo{Key: "hello.txt"}, nil)

		client := storage.NewFromBackend(backend, nil)
		exists, err := client.ObjectExists(context.Background(), "test-bucket", "hello.txt")

		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("MissingKeyIsNotAnError", func(t *testing.T) {
		svcErr := minio.ErrorResponse{Code: "NoSuchKey", Message: "key does not exist"}
		backend := new(mocks.Backend)
		backend.On("StatObject", mock.Anything, "test-bucket", "missing.txt", mock.Anything).
			Return(minio.ObjectInfo{}, svcErr)

		client := storage.NewFromBackend(backend, nil)
		exists, err := client.ObjectExists(context.Background(), "test-bucket", "missing.txt")

		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("OtherErrorsPropagate", func(t *testing.T) {
		svcErr := minio.ErrorResponse{Code: "AccessDenied", Message: "access denied"}
		backend := new(mocks.Backend)
		backend.On("StatObject", mock.Anything, "test-bucket", "hello.txt", mock.Anything).
			Return(minio.ObjectInfo{}, svcErr)

		client := storage.NewFromBackend(backend, nil)
		_, err := client.ObjectExists(context.Background(), "test-bucket", "hello.txt")

		assert.Error(t, err)
	})
}

func TestCopy(t *testing.T) {
	backend := new(mocks.Backend)
	backend.On("CopyObject", mock.Anything,
		minio.CopyDestOptions{Bucket: "dst-bucket", Object: "copy.txt"},
		minio.CopySrcOptions{Bucket: "src-bucket", Object: "orig.txt"},
	).Return(minio.UploadInfo{ETag: "def456"}, nil)

	client := storage.NewFromBackend(backend, nil)
	result, err := client.Copy(context.Background(), "src-bucket", "orig.txt", "dst-bucket", "copy.txt")

	require.NoError(t, err)
	assert.Equal(t, "def456", result.ETag)
	backend.AssertExpectations(t)
}

func TestRemoveObjects(t *testing.T) {
	t.Run("AllRemoved", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
			Return(removeErrChannel())

		client := storage.NewFromBackend(backend, nil)
		failed := client.RemoveObjects(context.Background(), "test-bucket", []string{"a.txt", "b.txt"})

		assert.Empty(t, failed)
	})

	t.Run("PartialFailure", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
			Return(removeErrChannel(minio.RemoveObjectError{
				ObjectName: "b.txt",
				Err:        errors.New("access denied"),
			}))

		client := storage.NewFromBackend(backend, nil)
		failed := client.RemoveObjects(context.Background(), "test-bucket", []string{"a.txt", "b.txt"})

		require.Len(t, failed, 1)
		assert.Equal(t, "b.txt", failed[0].Key)
		assert.Error(t, failed[0].Err)
	})
}

func TestPresignedGetURL(t *testing.T) {
	u, _ := url.Parse("http://localhost:9000/test-bucket/hello.txt?X-Amz-Expires=3600")
	backend := new(mocks.Backend)
	backend.On("PresignedGetObject", mock.Anything, "test-bucket", "hello.txt", time.Hour, url.Values(nil)).
		Return(u, nil)

	client := storage.NewFromBackend(backend, nil)
	link, err := client.PresignedGetURL(context.Background(), "test-bucket", "hello.txt", time.Hour)

	require.NoError(t, err)
	assert.Contains(t, link, "X-Amz-Expires=3600")
}

func TestIsConnected(t *testing.T) {
	t.Run("Reachable", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("ListBuckets", mock.Anything).Return([]minio.BucketInfo{}, nil)

		client := storage.NewFromBackend(backend, nil)
		assert.True(t, client.IsConnected(context.Background()))
	})

	t.Run("UnreachableReturnsFalse", func(t *testing.T) {
		backend := new(mocks.Backend)
		backend.On("ListBuckets", mock.Anything).Return(nil, errors.New("connection refused"))

		client := storage.NewFromBackend(backend, nil)
		assert.False(t, client.IsConnected(context.Background()))
	})
}
