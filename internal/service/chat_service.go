package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	apperrors "chat-relay/internal/errors"
	"chat-relay/internal/model"
	"chat-relay/internal/registry"
	"chat-relay/internal/sanitize"
	"chat-relay/internal/session"
)

// ChatService orchestrates one chat exchange: it validates the request end to
// end, calls the provider adapter, and commits the exchange to the session
// history. Both collaborators are injected so tests can substitute them.
type ChatService struct {
	registry *registry.Registry
	store    session.Store
}

// ChatRequest is the transient, per-request payload from the client.
// Presence is enforced at the API boundary via the validate tags; the
// semantic checks (known provider, allowed model, live session, clean text)
// run in HandleChat in a fixed order.
type ChatRequest struct {
	UserMessage string `json:"userMessage"`
	Provider    string `json:"provider" validate:"required"`
	Model       string `json:"model" validate:"required"`
	SessionID   string `json:"sessionId" validate:"required"`
}

func NewChatService(reg *registry.Registry, store session.Store) *ChatService {
	return &ChatService{registry: reg, store: store}
}

// CreateSession registers a fresh empty session and returns its identifier.
func (s *ChatService) CreateSession() string {
	return s.store.Create()
}

// HandleChat runs the validation pipeline and, on success, appends the
// sanitized user turn and the assistant reply to the session as one atomic
// unit. Each step short-circuits on first failure; no side effects occur
// before the final append, so a failed provider call never mutates history.
func (s *ChatService) HandleChat(ctx context.Context, req *ChatRequest) (string, error) {
	adapter, err := s.registry.Resolve(req.Provider)
	if err != nil {
		return "", err
	}

	if !s.registry.IsValidModel(req.Provider, req.Model) {
		return "", fmt.Errorf("%w: model %q is not allowed for provider %q", apperrors.ErrInvalidModel, req.Model, req.Provider)
	}

	if !wellFormedSessionID(req.SessionID) {
		return "", fmt.Errorf("%w: malformed session identifier", apperrors.ErrInvalidSession)
	}
	history, err := s.store.History(req.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrUnknownSession) {
			return "", fmt.Errorf("%w: unknown session", apperrors.ErrInvalidSession)
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	text, err := sanitize.Sanitize(req.UserMessage)
	if err != nil {
		return "", err
	}

	reply, err := adapter.GenerateReply(ctx, text, history, req.Model)
	if err != nil {
		slog.Error("Provider call failed",
			"provider", req.Provider,
			"model", req.Model,
			"error", err,
		)
		return "", err
	}

	err = s.store.Append(req.SessionID,
		model.ChatTurn{Role: model.RoleUser, Content: text},
		model.ChatTurn{Role: model.RoleAssistant, Content: reply},
	)
	if err != nil {
		// The session was evicted between the history read and the append.
		// The reply is lost, but the store stays consistent.
		if errors.Is(err, session.ErrUnknownSession) {
			return "", fmt.Errorf("%w: session expired", apperrors.ErrInvalidSession)
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	return reply, nil
}

// wellFormedSessionID checks the identifier syntactically before touching the
// store: a random UUID v4 as issued by the store, nothing else.
func wellFormedSessionID(id string) bool {
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}
