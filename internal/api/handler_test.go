// Black-box tests for the API layer: only the package's exported surface is
// used, with the service interfaces mocked out.
package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chat-relay/internal/api"
	apperrors "chat-relay/internal/errors"
	"chat-relay/internal/interfaces/mocks"
	"chat-relay/internal/service"
)

func setupChatHandler(t *testing.T) (*api.ChatHandler, *mocks.MockChatService) {
	mockChatSvc := mocks.NewMockChatService(t)
	return api.NewChatHandler(mockChatSvc), mockChatSvc
}

func TestChatHandler_HandleCreateSession(t *testing.T) {
	handler, mockChatSvc := setupChatHandler(t)
	mockChatSvc.On("CreateSession").Return("11111111-2222-4333-8444-555555555555").Once()

	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	rr := httptest.NewRecorder()
	handler.HandleCreateSession(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp api.SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "11111111-2222-4333-8444-555555555555", resp.SessionID)
}

func TestChatHandler_HandleChat(t *testing.T) {
	const body = `{"userMessage":"Hello","provider":"openai","model":"gpt-4o-mini","sessionId":"11111111-2222-4333-8444-555555555555"}`

	t.Run("success", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)
		mockChatSvc.On("HandleChat", mock.Anything, mock.MatchedBy(func(req *service.ChatRequest) bool {
			return req.Provider == "openai" && req.Model == "gpt-4o-mini" && req.UserMessage == "Hello"
		})).Return("Hi there", nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp api.ChatResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Hi there", resp.ChatbotResponse)
		assert.Equal(t, "11111111-2222-4333-8444-555555555555", resp.SessionID)
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{invalid`))
		rr := httptest.NewRecorder()
		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing required fields", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"userMessage":"Hello"}`))
		rr := httptest.NewRecorder()
		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'Provider' failed on the 'required' tag")
	})

	t.Run("unknown provider maps to 400", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)
		mockChatSvc.On("HandleChat", mock.Anything, mock.Anything).
			Return("", apperrors.ErrUnknownProvider).Once()

		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid provider.")
	})

	t.Run("invalid session maps to 400", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)
		mockChatSvc.On("HandleChat", mock.Anything, mock.Anything).
			Return("", apperrors.ErrInvalidSession).Once()

		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid session.")
	})

	t.Run("upstream failure maps to 502 with a generic message", func(t *testing.T) {
		tests := []error{
			apperrors.ErrMissingCredential,
			apperrors.ErrRemoteUnavailable,
			apperrors.ErrMalformedResponse,
		}
		for _, upstreamErr := range tests {
			handler, mockChatSvc := setupChatHandler(t)
			mockChatSvc.On("HandleChat", mock.Anything, mock.Anything).
				Return("", upstreamErr).Once()

			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
			rr := httptest.NewRecorder()
			handler.HandleChat(rr, req)

			assert.Equal(t, http.StatusBadGateway, rr.Code, "error %v", upstreamErr)
			assert.Contains(t, rr.Body.String(), "unable to reach the AI service")
			// The underlying cause stays in the logs, never in the body.
			assert.NotContains(t, rr.Body.String(), upstreamErr.Error())
		}
	})
}
