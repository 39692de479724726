package llm

import (
	"context"
	"net/http"
	"time"

	"chat-relay/internal/model"
)

// Provider is the capability contract every upstream LLM vendor is adapted to.
// Implementations translate between the neutral chat contract and one
// provider's wire format. Every failure surfaces as one of the sentinel
// errors in internal/errors (ErrMissingCredential, ErrRemoteUnavailable,
// ErrMalformedResponse) so callers see a uniform failure contract regardless
// of provider; raw transport errors never escape an adapter.
type Provider interface {
	// Configured reports whether an API credential is present. A provider
	// without a credential still starts; its calls fail with
	// ErrMissingCredential instead.
	Configured() bool

	// ListModels returns the curated, low-cost model whitelist for the
	// provider. Providers with a live models endpoint intersect their public
	// catalog with the static allowlist; the others return the allowlist
	// directly.
	ListModels(ctx context.Context) ([]model.ModelOption, error)

	// GenerateReply appends userText as a final user turn to history (the
	// caller's slice is not mutated), issues exactly one request to the
	// provider's chat-completion endpoint, and returns the extracted reply
	// text. There are no retries; a transient failure is surfaced immediately.
	GenerateReply(ctx context.Context, userText string, history []model.ChatTurn, modelID string) (string, error)
}

const (
	// requestTimeout bounds every outbound provider call. The upstream APIs
	// occasionally hang on overloaded models; without this the relay would
	// hold the client connection until the transport gives up.
	requestTimeout = 30 * time.Second

	// maxReplyTokens caps generation cost per exchange across all providers.
	maxReplyTokens = 500
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
