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

// OpenAI and xAI share the chat-completions wire format, so the request
// assembly and response parsing live here and both adapters call into it.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// completeChat serializes the conversation into the chat-completions format,
// issues a single bearer-authenticated POST, and extracts the reply.
func completeChat(ctx context.Context, client *http.Client, endpoint, apiKey, modelID, userText string, history []model.ChatTurn) (string, error) {
	messages := make([]chatMessage, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, chatMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, chatMessage{Role: model.RoleUser, Content: userText})

	body, err := json.Marshal(chatCompletionsRequest{
		Model:     modelID,
		MaxTokens: maxReplyTokens,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("%w: could not marshal request: %v", apperrors.ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: could not create request: %v", apperrors.ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: status %d: %s", apperrors.ErrRemoteUnavailable, resp.StatusCode, detail)
	}

	var parsed chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: could not decode body: %v", apperrors.ErrMalformedResponse, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no completion choices in response", apperrors.ErrMalformedResponse)
	}
	return parsed.Choices[0].Message.Content, nil
}

// maxErrorBody limits how much of an upstream error body is captured for logs.
const maxErrorBody = 4 << 10
