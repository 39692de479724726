package api

import (
	"fmt"
	"net/http"

	apperrors "chat-relay/internal/errors"
	"chat-relay/internal/interfaces"
)

// ModelHandler handles the model-listing and provider-status endpoints.
type ModelHandler struct {
	models interfaces.ModelService
}

func NewModelHandler(models interfaces.ModelService) *ModelHandler {
	return &ModelHandler{models: models}
}

// HandleListModels returns the curated model options for the provider named
// in the query string.
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	providerKey := r.URL.Query().Get("provider")
	if providerKey == "" {
		respondWithError(w, fmt.Errorf("%w: missing provider parameter", apperrors.ErrUnknownProvider))
		return
	}

	options, err := h.models.List(r.Context(), providerKey)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ModelsResponse{Models: options})
}

// HandleProviderStatus reports which providers have a credential configured.
func (h *ModelHandler) HandleProviderStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ProviderStatusResponse{Status: h.models.Status()})
}
