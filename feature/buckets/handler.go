package buckets

import (
	"objectstore/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for bucket operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the bucket routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/buckets")
	group.Get("/", h.HandleList)
	group.Put("/:name", h.HandleCreate)
	group.Head("/:name", h.HandleExists)
	group.Delete("/:name", h.HandleRemove)
}

// HandleList returns every bucket with its creation timestamp.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	infos, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Bucket listing failed", zap.Error(err))
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"buckets": infos})
}

// HandleCreate creates a new bucket.
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	if err := h.service.Create(c.Context(), name); err != nil {
		l.Error("Bucket creation failed", zap.String("bucket", name), zap.Error(err))
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"bucket": name})
}

// HandleExists reports bucket existence through the status code.
func (h *Handler) HandleExists(c *fiber.Ctx) error {
	exists, err := h.service.Exists(c.Context(), c.Params("name"))
	if err != nil {
		return serviceError(c, err)
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleRemove removes a bucket. With ?force=true all contained objects
// are removed first.
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")
	force := c.Query("force") == "true"

	if err := h.service.Remove(c.Context(), name, force); err != nil {
		l.Error("Bucket removal failed", zap.String("bucket", name), zap.Error(err))
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
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
