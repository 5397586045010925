package handler

import (
	"net/http"

	"github.com/healthsync/healthsync-go/internal/model"
	"github.com/healthsync/healthsync-go/internal/service"
)

// SideEffectHandler serves adverse side effects and their observations.
type SideEffectHandler struct {
	service *service.SideEffectService
}

// NewSideEffectHandler creates a new SideEffectHandler.
func NewSideEffectHandler(svc *service.SideEffectService) *SideEffectHandler {
	return &SideEffectHandler{service: svc}
}

// HandleAdd handles POST /patient/{patient_id}/adverse_side_effect requests.
func (h *SideEffectHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	patientID, token, ok := patientRequest(w, r)
	if !ok {
		return
	}

	var req model.AdverseSideEffectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	effect, err := h.service.AddAdverseSideEffect(r.Context(), patientID, req, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, effect)
}

// HandleList handles GET /adverse_side_effects/{patient_id} requests.
func (h *SideEffectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	patientID, token, ok := patientRequest(w, r)
	if !ok {
		return
	}

	summaries, err := h.service.ListAdverseSideEffects(r.Context(), patientID, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// HandleAddDetail handles POST /adverse_side_effect/details requests.
func (h *SideEffectHandler) HandleAddDetail(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r)
	if !ok {
		return
	}

	var req model.AdverseSideEffectDetailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	detail, err := h.service.AddSideEffectDetail(r.Context(), req, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, detail)
}

// HandleListDetails handles GET /adverse_side_effect/{adverse_side_effect_id}/details requests.
func (h *SideEffectHandler) HandleListDetails(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r)
	if !ok {
		return
	}
	sideEffectID, ok := int64Param(w, r, "adverse_side_effect_id")
	if !ok {
		return
	}

	details, err := h.service.ListSideEffectDetails(r.Context(), sideEffectID, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}
