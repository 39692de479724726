package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "chat-relay/internal/errors"
	"chat-relay/internal/model"
)

// This file contains the DTOs for API responses and the helpers that keep
// every endpoint's JSON and error behavior consistent.

// ErrorResponse is the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionResponse is returned by POST /session.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// ChatResponse is returned by POST /chat on success.
type ChatResponse struct {
	ChatbotResponse string `json:"chatbotResponse"`
	SessionID       string `json:"sessionId"`
}

// ModelsResponse is returned by GET /models.
type ModelsResponse struct {
	Models []model.ModelOption `json:"models"`
}

// ProviderStatusResponse is returned by GET /providerStatus: per provider
// key, whether its credential is configured.
type ProviderStatusResponse struct {
	Status map[string]bool `json:"status"`
}

// upstreamFailureMessage is the one message shown to clients for any provider
// failure. The real cause (status, body, credential state) stays in the logs.
const upstreamFailureMessage = "Sorry, I was unable to reach the AI service. Please try again."

// respondWithError maps the sentinel error taxonomy to HTTP status codes and
// writes a standard JSON error body. Client-caused errors keep their specific
// message; upstream and internal errors are replaced with a generic one so no
// provider detail or credential state leaks out.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, apperrors.ErrUnknownProvider):
		statusCode = http.StatusBadRequest
		message = "Invalid provider."
	case errors.Is(err, apperrors.ErrInvalidModel):
		statusCode = http.StatusBadRequest
		message = "Invalid model for selected provider."
	case errors.Is(err, apperrors.ErrInvalidSession):
		statusCode = http.StatusBadRequest
		message = "Invalid session."
	case errors.Is(err, apperrors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation errors carry a descriptive, client-safe message.
		message = err.Error()
	case errors.Is(err, apperrors.ErrMissingCredential),
		errors.Is(err, apperrors.ErrRemoteUnavailable),
		errors.Is(err, apperrors.ErrMalformedResponse):
		statusCode = http.StatusBadGateway
		message = upstreamFailureMessage
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	if statusCode >= http.StatusInternalServerError {
		slog.Error("Responding with upstream/internal error", "status_code", statusCode, "internal_error", err)
	} else {
		slog.Warn("Responding with client error", "status_code", statusCode, "client_message", message)
	}

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals a payload and writes it with the given status.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
