package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "chat-relay/internal/errors"
	"chat-relay/internal/interfaces"
	"chat-relay/internal/service"
)

// ChatHandler handles the session and chat endpoints.
type ChatHandler struct {
	chat interfaces.ChatService
}

func NewChatHandler(chat interfaces.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// HandleCreateSession creates a fresh conversation session.
func (h *ChatHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := h.chat.CreateSession()
	respondWithJSON(w, http.StatusOK, SessionResponse{SessionID: sessionID})
}

// HandleChat runs one chat exchange: decode, validate presence, then hand the
// request to the orchestrator, which owns the semantic validation order.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", apperrors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	reply, err := h.chat.HandleChat(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ChatResponse{ChatbotResponse: reply, SessionID: req.SessionID})
}
