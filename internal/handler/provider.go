package handler

import (
	"net/http"

	"github.com/healthsync/healthsync-go/internal/model"
	"github.com/healthsync/healthsync-go/internal/service"
)

// ProviderHandler serves a patient's care providers.
type ProviderHandler struct {
	service *service.ProviderService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(svc *service.ProviderService) *ProviderHandler {
	return &ProviderHandler{service: svc}
}

// HandleLink handles PUT /patient/{patient_id}/provider requests.
func (h *ProviderHandler) HandleLink(w http.ResponseWriter, r *http.Request) {
	patientID, token, ok := patientRequest(w, r)
	if !ok {
		return
	}

	var req model.ProviderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	link, err := h.service.LinkProvider(r.Context(), patientID, req, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// HandleList handles GET /patient/{patient_id}/provider requests.
func (h *ProviderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	patientID, token, ok := patientRequest(w, r)
	if !ok {
		return
	}

	providers, err := h.service.ListProviders(r.Context(), patientID, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, providers)
}
