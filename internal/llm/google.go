package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "chat-relay/internal/errors"
	"chat-relay/internal/model"
)

// GoogleModels is the curated allowlist for the google provider. Labels are
// canonical here rather than taken from the live catalog, so a display-name
// change upstream never changes what the client sees.
var GoogleModels = []model.ModelOption{
	{Value: "gemini-2.5-flash-lite", Label: "Gemini 2.5 Flash-Lite"},
	{Value: "gemini-2.5-flash", Label: "Gemini 2.5 Flash"},
	{Value: "gemini-3-flash-preview", Label: "Gemini 3 Flash Preview"},
}

type googleProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewGoogleProvider creates the adapter for the Gemini generateContent API.
func NewGoogleProvider(apiKey, baseURL string) Provider {
	return &googleProvider{
		client:  newHTTPClient(),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (p *googleProvider) Configured() bool {
	return p.apiKey != ""
}

// keyed appends the API key query parameter; Google authenticates via the
// URL rather than a header.
func (p *googleProvider) keyed(path string) string {
	return p.baseURL + path + "?key=" + url.QueryEscape(p.apiKey)
}

// ListModels fetches the live catalog and intersects it with the allowlist.
// Catalog entries are named "models/<id>", so the prefix is stripped before
// the comparison.
func (p *googleProvider) ListModels(ctx context.Context) ([]model.ModelOption, error) {
	if !p.Configured() {
		return nil, fmt.Errorf("%w: google", apperrors.ErrMissingCredential)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.keyed("/v1beta/models"), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create request: %v", apperrors.ErrInternal, err)
	}

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
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("%w: could not decode model list: %v", apperrors.ErrMalformedResponse, err)
	}

	available := make(map[string]bool, len(catalog.Models))
	for _, m := range catalog.Models {
		available[strings.TrimPrefix(m.Name, "models/")] = true
	}

	options := make([]model.ModelOption, 0, len(GoogleModels))
	for _, allowed := range GoogleModels {
		if available[allowed.Value] {
			options = append(options, allowed)
		}
	}
	return options, nil
}

type googlePart struct {
	Text string `json:"text"`
}

type googleContent struct {
	Role  string       `json:"role"`
	Parts []googlePart `json:"parts"`
}

type googleRequest struct {
	Contents []googleContent `json:"contents"`
}

type googleResponse struct {
	Candidates []struct {
		Content struct {
			Parts []googlePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// googleRole maps the neutral role vocabulary onto Gemini's, which calls the
// assistant side "model".
func googleRole(role string) string {
	if role == model.RoleAssistant {
		return "model"
	}
	return model.RoleUser
}

func (p *googleProvider) GenerateReply(ctx context.Context, userText string, history []model.ChatTurn, modelID string) (string, error) {
	if !p.Configured() {
		return "", fmt.Errorf("%w: google", apperrors.ErrMissingCredential)
	}

	contents := make([]googleContent, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, googleContent{
			Role:  googleRole(turn.Role),
			Parts: []googlePart{{Text: turn.Content}},
		})
	}
	contents = append(contents, googleContent{
		Role:  model.RoleUser,
		Parts: []googlePart{{Text: userText}},
	})

	body, err := json.Marshal(googleRequest{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("%w: could not marshal request: %v", apperrors.ErrInternal, err)
	}

	endpoint := p.keyed("/v1beta/models/" + modelID + ":generateContent")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: could not create request: %v", apperrors.ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: status %d: %s", apperrors.ErrRemoteUnavailable, resp.StatusCode, detail)
	}

	var parsed googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: could not decode body: %v", apperrors.ErrMalformedResponse, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 || parsed.Candidates[0].Content.Parts[0].Text == "" {
		return "", fmt.Errorf("%w: no candidates in response", apperrors.ErrMalformedResponse)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
