package objects

import (
	"objectstore/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature exposes object operations over HTTP.
type Feature struct {
	service *Service
}

// NewFeature creates the objects feature.
func NewFeature(client *storage.Client, logger *zap.Logger) *Feature {
	return &Feature{service: NewService(client, logger)}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "objects"
}

// Register mounts the object routes on the app.
func (f *Feature) Register(app *fiber.App) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
