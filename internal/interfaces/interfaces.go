package interfaces

import (
	"context"

	"chat-relay/internal/model"
	"chat-relay/internal/service"
)

// This file defines the interfaces the API layer depends on. Depending on
// these, instead of the concrete services, decouples the handlers from the
// business logic and makes them testable via mocks.

// ChatService is the contract for session creation and chat exchanges.
type ChatService interface {
	CreateSession() string
	HandleChat(ctx context.Context, req *service.ChatRequest) (string, error)
}

// ModelService is the contract for model listing and provider status.
type ModelService interface {
	List(ctx context.Context, providerKey string) ([]model.ModelOption, error)
	Status() map[string]bool
}
