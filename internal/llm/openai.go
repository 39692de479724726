package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	apperrors "chat-relay/internal/errors"
	"chat-relay/internal/model"
)

// OpenAIModels is the curated allowlist for the openai provider. Only
// low-cost models are exposed through the relay; OpenAI expanding its public
// catalog never authorizes new spend without a change here.
var OpenAIModels = []model.ModelOption{
	{Value: "gpt-4o-mini", Label: "gpt-4o-mini"},
	{Value: "gpt-3.5-turbo", Label: "gpt-3.5-turbo"},
}

type openAIProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewOpenAIProvider creates the adapter for the OpenAI chat-completions API.
// baseURL points at https://api.openai.com in production and at a stub
// server in tests.
func NewOpenAIProvider(apiKey, baseURL string) Provider {
	return &openAIProvider{
		client:  newHTTPClient(),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (p *openAIProvider) Configured() bool {
	return p.apiKey != ""
}

// ListModels fetches the live catalog and intersects it with the allowlist,
// so a model that OpenAI has retired is not offered to the client.
func (p *openAIProvider) ListModels(ctx context.Context) ([]model.ModelOption, error) {
	if !p.Configured() {
		return nil, fmt.Errorf("%w: openai", apperrors.ErrMissingCredential)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/models", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create request: %v", apperrors.ErrInternal, err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", apperrors.ErrRemoteUnavailable, resp.StatusCode, detail)
	}

	var catalog struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("%w: could not decode model list: %v", apperrors.ErrMalformedResponse, err)
	}

	available := make(map[string]bool, len(catalog.Data))
	for _, m := range catalog.Data {
		available[m.ID] = true
	}

	options := make([]model.ModelOption, 0, len(OpenAIModels))
	for _, allowed := range OpenAIModels {
		if available[allowed.Value] {
			options = append(options, allowed)
		}
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Label < options[j].Label })
	return options, nil
}

func (p *openAIProvider) GenerateReply(ctx context.Context, userText string, history []model.ChatTurn, modelID string) (string, error) {
	if !p.Configured() {
		return "", fmt.Errorf("%w: openai", apperrors.ErrMissingCredential)
	}
	return completeChat(ctx, p.client, p.baseURL+"/v1/chat/completions", p.apiKey, modelID, userText, history)
}
