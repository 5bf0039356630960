package service

import (
	"context"

	"routerchat/backend/internal/config"
)

// ModelService exposes the configured model catalog.
type ModelService struct {
	catalog *config.ModelCatalog
}

// NewModelService creates a new ModelService.
func NewModelService(catalog *config.ModelCatalog) *ModelService {
	return &ModelService{catalog: catalog}
}

// List returns every model the client may pick, in catalog order.
func (s *ModelService) List(_ context.Context) ([]config.ModelSpec, error) {
	return s.catalog.List(), nil
}
