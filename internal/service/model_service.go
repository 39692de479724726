package service

import (
	"context"

	"chat-relay/internal/model"
	"chat-relay/internal/registry"
)

// ModelService handles the model-listing and provider-status surface.
type ModelService struct {
	registry *registry.Registry
}

func NewModelService(reg *registry.Registry) *ModelService {
	return &ModelService{registry: reg}
}

// List returns the curated model options for one provider. The provider key
// is resolved through the registry, so an unknown key fails the same way it
// does on the chat path.
func (s *ModelService) List(ctx context.Context, providerKey string) ([]model.ModelOption, error) {
	adapter, err := s.registry.Resolve(providerKey)
	if err != nil {
		return nil, err
	}
	return adapter.ListModels(ctx)
}

// Status reports, per provider key, whether its credential is configured.
// The client uses this to gray out unavailable providers.
func (s *ModelService) Status() map[string]bool {
	return s.registry.Status()
}
