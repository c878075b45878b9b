package importer

import (
	"par-manager/core/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the import feature. A nil store disables it.
func NewFeature(store catalog.ImportStore, logger *zap.Logger, opts Options) *Feature {
	svc := NewService(store, logger, opts)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service exposes the import service, for the CLI.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "importer"
}

// IsEnabled reports whether a store is available.
func (f *Feature) IsEnabled() bool {
	return f.service.store != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
