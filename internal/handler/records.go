package handler

import (
	"net/http"

	"github.com/healthsync/healthsync-go/internal/model"
	"github.com/healthsync/healthsync-go/internal/service"
)

// RecordHandler serves health conditions and medications.
type RecordHandler struct {
	service *service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(svc *service.RecordService) *RecordHandler {
	return &RecordHandler{service: svc}
}

// HandleListConditions handles GET /patient/{patient_id}/health_conditions requests.
func (h *RecordHandler) HandleListConditions(w http.ResponseWriter, r *http.Request) {
	patientID, token, ok := patientRequest(w, r)
	if !ok {
		return
	}

	conditions, err := h.service.ListHealthConditions(r.Context(), patientID, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, conditions)
}

// HandleAddCondition handles POST /patient/{patient_id}/health_condition requests.
func (h *RecordHandler) HandleAddCondition(w http.ResponseWriter, r *http.Request) {
	patientID, token, ok := patientRequest(w, r)
	if !ok {
		return
	}

	var req model.HealthConditionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	condition, err := h.service.AddHealthCondition(r.Context(), patientID, req, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, condition)
}

// HandleListMedications handles GET /patient/{patient_id}/medications requests.
func (h *RecordHandler) HandleListMedications(w http.ResponseWriter, r *http.Request) {
	patientID, token, ok := patientRequest(w, r)
	if !ok {
		return
	}

	medications, err := h.service.ListMedications(r.Context(), patientID, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, medications)
}

// HandleAddMedication handles POST /patient/{patient_id}/medication requests.
func (h *RecordHandler) HandleAddMedication(w http.ResponseWriter, r *http.Request) {
	patientID, token, ok := patientRequest(w, r)
	if !ok {
		return
	}

	var req model.MedicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	medication, err := h.service.AddMedication(r.Context(), patientID, req, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, medication)
}

// patientRequest extracts the bearer token and the patient_id URL parameter.
func patientRequest(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	token, ok := bearerToken(w, r)
	if !ok {
		return 0, "", false
	}
	patientID, ok := int64Param(w, r, "patient_id")
	if !ok {
		return 0, "", false
	}
	return patientID, token, true
}
