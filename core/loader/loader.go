package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Feature is a self-contained unit of functionality that registers its
// own routes on the application.
type Feature interface {
	// Name returns the feature name, used in error reporting.
	Name() string
	// Register mounts the feature's routes on the app.
	Register(app *fiber.App) error
}

// Manager collects features and loads them onto a Fiber app.
type Manager struct {
	features []Feature
}

// NewManager creates an empty feature manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a feature to the manager. Features are loaded in
// registration order.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// LoadAll registers every feature's routes, stopping at the first failure.
func (m *Manager) LoadAll(app *fiber.App) error {
	for _, f := range m.features {
		if err := f.Register(app); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
	}
	return nil
}
