package llm

import (
	"context"
	"fmt"
	"net/http"

	apperrors "chat-relay/internal/errors"
	"chat-relay/internal/model"
)

// XAIModels is the curated allowlist for the x provider. xAI has no public
// models endpoint, so this static list is also what ListModels serves.
var XAIModels = []model.ModelOption{
	{Value: "grok-3-mini", Label: "Grok 3 Mini"},
	{Value: "grok-4-fast-non-reasoning", Label: "Grok 4 Fast Non-Reasoning"},
	{Value: "grok-4-1-fast-non-reasoning", Label: "Grok 4.1 Fast Non-Reasoning"},
}

// The xAI API is wire-compatible with OpenAI chat completions, so the adapter
// reuses the shared request plumbing against a different base URL.
type xaiProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewXAIProvider creates the adapter for the xAI chat API.
func NewXAIProvider(apiKey, baseURL string) Provider {
	return &xaiProvider{
		client:  newHTTPClient(),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (p *xaiProvider) Configured() bool {
	return p.apiKey != ""
}

// ListModels serves the static allowlist without touching the network; a
// missing credential only matters once a reply is generated.
func (p *xaiProvider) ListModels(ctx context.Context) ([]model.ModelOption, error) {
	return XAIModels, nil
}

func (p *xaiProvider) GenerateReply(ctx context.Context, userText string, history []model.ChatTurn, modelID string) (string, error) {
	if !p.Configured() {
		return "", fmt.Errorf("%w: x", apperrors.ErrMissingCredential)
	}
	return completeChat(ctx, p.client, p.baseURL+"/v1/chat/completions", p.apiKey, modelID, userText, history)
}
