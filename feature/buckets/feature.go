package buckets

import (
	"objectstore/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature exposes bucket operations over HTTP.
type Feature struct {
	service *Service
}

// NewFeature creates the buckets feature.
func NewFeature(client *storage.Client, logger *zap.Logger) *Feature {
	return &Feature{service: NewService(client, logger)}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "buckets"
}

// Register mounts the bucket routes on the app.
func (f *Feature) Register(app *fiber.App) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
