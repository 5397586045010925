package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/healthsync/healthsync-go/internal/service"
)

// PatientHandler serves patient profiles.
type PatientHandler struct {
	service *service.PatientService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{service: svc}
}

// HandleGetByEmail handles GET /patient/{patient_email} requests.
func (h *PatientHandler) HandleGetByEmail(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r)
	if !ok {
		return
	}

	// chi matches on RawPath when the client escaped the path, so the
	// parameter can still carry percent-encoding.
	email, err := url.PathUnescape(chi.URLParam(r, "patient_email"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid patient_email"))
		return
	}

	patient, err := h.service.GetPatientByEmail(r.Context(), email, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, patient)
}
