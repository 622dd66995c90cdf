package objects

import (
	"bytes"
	"strings"
	"time"

	"objectstore/core/logger"
	"objectstore/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MetadataHeaderPrefix marks request headers that become user metadata
// on upload, e.g. "X-Meta-Owner: alice".
const MetadataHeaderPrefix = "X-Meta-"

// CopySourceHeader turns an upload request into a server-side copy.
// Its value is the source as "bucket/key".
const CopySourceHeader = "X-Copy-Source"

// Handler handles HTTP requests for object operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the object routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/buckets/:bucket/objects")
	group.Get("/", h.HandleList)
	group.Post("/remove", h.HandleBatchRemove)
	group.Put("/*", h.HandleUpload)
	group.Get("/*", h.HandleDownload)
	group.Head("/*", h.HandleExists)
	group.Delete("/*", h.HandleRemove)
}

// HandleList lists the objects of a bucket. ?prefix= filters by key prefix.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	bucket := c.Params("bucket")

	infos, err := h.service.List(c.Context(), bucket, c.Query("prefix"))
	if err != nil {
		l.Error("Object listing failed", zap.String("bucket", bucket), zap.Error(err))
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"objects": infos})
}

// HandleUpload stores the raw request body as a whole object. The
// Content-Type header and X-Meta-* headers are attached to the object.
// When X-Copy-Source is present the body is ignored and a server-side
// copy from "bucket/key" is performed instead.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	bucket := c.Params("bucket")
	key := c.Params("*")

	if src := c.Get(CopySourceHeader); src != "" {
		srcBucket, srcKey, ok := strings.Cut(src, "/")
		if !ok || srcBucket == "" || srcKey == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "copy source must be bucket/key",
			})
		}
		result, err := h.service.Copy(c.Context(), srcBucket, srcKey, bucket, key)
		if err != nil {
			l.Error("Copy failed", zap.String("source", src), zap.Error(err))
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(result)
	}

	body := c.Body()
	opts := storage.UploadOptions{
		ContentType: c.Get(fiber.HeaderContentType),
		Metadata:    metadataFromHeaders(c),
	}

	result, err := h.service.Upload(c.Context(), bucket, key, bytes.NewReader(body), int64(len(body)), opts)
	if err != nil {
		l.Error("Upload failed", zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleDownload streams the object payload back. ?stat=true returns the
// metadata as JSON instead; ?presign=DURATION returns a presigned URL.
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	bucket := c.Params("bucket")
	key := c.Params("*")

	if c.Query("stat") == "true" {
		stat, err := h.service.Stat(c.Context(), bucket, key)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(stat)
	}

	if raw := c.Query("presign"); raw != "" {
		expires, err := time.ParseDuration(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "presign must be a duration, e.g. 1h",
			})
		}
		url, err := h.service.PresignURL(c.Context(), bucket, key, expires)
		if err != nil {
			l.Error("Presign failed", zap.String("key", key), zap.Error(err))
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url, "expires": expires.String()})
	}

	data, stat, err := h.service.Download(c.Context(), bucket, key)
	if err != nil {
		l.Error("Download failed", zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return serviceError(c, err)
	}
	if stat.ContentType != "" {
		c.Set(fiber.HeaderContentType, stat.ContentType)
	}
	return c.Send(data)
}

// HandleExists reports object existence through the status code.
func (h *Handler) HandleExists(c *fiber.Ctx) error {
	exists, err := h.service.Exists(c.Context(), c.Params("bucket"), c.Params("*"))
	if err != nil {
		return serviceError(c, err)
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleRemove deletes a single object.
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	bucket := c.Params("bucket")
	key := c.Params("*")

	if err := h.service.Remove(c.Context(), bucket, key); err != nil {
		l.Error("Removal failed", zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleBatchRemove deletes a set of keys. The response reports per-key
// failures; removal is not atomic.
func (h *Handler) HandleBatchRemove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	bucket := c.Params("bucket")

	var req struct {
		Keys []string `json:"keys"`
	}
	if err := c.BodyParser(&req); err != nil || len(req.Keys) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body must contain a non-empty keys array",
		})
	}

	failed := h.service.RemoveBatch(c.Context(), bucket, req.Keys)
	if len(failed) > 0 {
		l.Warn("Batch removal had failures", zap.String("bucket", bucket), zap.Int("failed", len(failed)))
	}

	failures := make([]fiber.Map, 0, len(failed))
	for _, f := range failed {
		failures = append(failures, fiber.Map{"key": f.Key, "error": f.Err.Error()})
	}
	return c.JSON(fiber.Map{
		"requested": len(req.Keys),
		"failed":    failures,
	})
}

func metadataFromHeaders(c *fiber.Ctx) map[string]string {
	var metadata map[string]string
	for name, values := range c.GetReqHeaders() {
		if !strings.HasPrefix(name, MetadataHeaderPrefix) || len(values) == 0 {
			continue
		}
		if metadata == nil {
			metadata = make(map[string]string)
		}
		metadata[strings.TrimPrefix(name, MetadataHeaderPrefix)] = values[0]
	}
	return metadata
}

// serviceError maps a storage service error onto an HTTP response,
// keeping the service's error code in the body.
func serviceError(c *fiber.Ctx, err error) error {
	resp := minio.ToErrorResponse(err)
	status := fiber.StatusInternalServerError
	switch resp.Code {
	case "NoSuchBucket", "NoSuchKey":
		status = fiber.StatusNotFound
	case "BucketAlreadyExists", "BucketAlreadyOwnedByYou", "BucketNotEmpty":
		status = fiber.StatusConflict
	case "AccessDenied":
		status = fiber.StatusForbidden
	case "InvalidBucketName", "XMinioInvalidObjectName":
		status = fiber.StatusBadRequest
	}
	body := fiber.Map{"error": err.Error()}
	if resp.Code != "" {
		body["code"] = resp.Code
	}
	return c.Status(status).JSON(body)
}
