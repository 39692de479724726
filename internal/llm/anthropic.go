package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "chat-relay/internal/errors"
	"chat-relay/internal/model"
)

// AnthropicModels is the curated allowlist for the anthropic provider.
// Anthropic has no public models endpoint, so ListModels serves this list.
var AnthropicModels = []model.ModelOption{
	{Value: "claude-haiku-4-5-20251001", Label: "Claude Haiku 4.5"},
}

// anthropicVersion pins the Messages API revision; required on every call.
const anthropicVersion = "2023-06-01"

type anthropicProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewAnthropicProvider creates the adapter for the Anthropic Messages API.
func NewAnthropicProvider(apiKey, baseURL string) Provider {
	return &anthropicProvider{
		client:  newHTTPClient(),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (p *anthropicProvider) Configured() bool {
	return p.apiKey != ""
}

// ListModels serves the static allowlist without touching the network, so it
// works whether or not a credential is configured. The credential is only
// required when a reply is actually generated.
func (p *anthropicProvider) ListModels(ctx context.Context) ([]model.ModelOption, error) {
	return AnthropicModels, nil
}

type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *anthropicProvider) GenerateReply(ctx context.Context, userText string, history []model.ChatTurn, modelID string) (string, error) {
	if !p.Configured() {
		return "", fmt.Errorf("%w: anthropic", apperrors.ErrMissingCredential)
	}

	messages := make([]chatMessage, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, chatMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, chatMessage{Role: model.RoleUser, Content: userText})

	body, err := json.Marshal(anthropicRequest{
		Model:     modelID,
		MaxTokens: maxReplyTokens,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("%w: could not marshal request: %v", apperrors.ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: could not create request: %v", apperrors.ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: status %d: %s", apperrors.ErrRemoteUnavailable, resp.StatusCode, detail)
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: could not decode body: %v", apperrors.ErrMalformedResponse, err)
	}
	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		return "", fmt.Errorf("%w: no content blocks in response", apperrors.ErrMalformedResponse)
	}
	return parsed.Content[0].Text, nil
}
