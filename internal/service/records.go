package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/healthsync/healthsync-go/internal/model"
	"github.com/healthsync/healthsync-go/internal/repository"
)

// RecordService manages a patient's health conditions and medications.
type RecordService struct {
	gate        *AccessGate
	conditions  *repository.HealthConditionRepository
	medications *repository.MedicationRepository
	now         func() time.Time
}

// NewRecordService creates a new RecordService.
func NewRecordService(gate *AccessGate, conditions *repository.HealthConditionRepository, medications *repository.MedicationRepository) *RecordService {
	return &RecordService{
		gate:        gate,
		conditions:  conditions,
		medications: medications,
		now:         time.Now,
	}
}

// AddHealthCondition records a health condition for the patient.
func (s *RecordService) AddHealthCondition(ctx context.Context, patientID int64, req model.HealthConditionRequest, token string) (model.HealthCondition, error) {
	if _, err := s.gate.PatientByID(ctx, patientID, token); err != nil {
		return model.HealthCondition{}, err
	}
	if err := checkInfoObject(req.ConditionInfo); err != nil {
		return model.HealthCondition{}, err
	}

	now := s.now().UTC()
	c := model.HealthCondition{
		PatientID:     patientID,
		ConditionName: req.ConditionName,
		Code:          req.Code,
		DiagnosedOn:   req.DiagnosedOn,
		ConditionInfo: req.ConditionInfo,
		Notes:         req.Notes,
		CreatedOn:     now,
		UpdatedOn:     now,
		Active:        true,
	}
	if err := s.conditions.Create(ctx, &c); err != nil {
		return model.HealthCondition{}, err
	}
	return c, nil
}

// ListHealthConditions returns every health condition recorded for the patient.
func (s *RecordService) ListHealthConditions(ctx context.Context, patientID int64, token string) ([]model.HealthCondition, error) {
	if _, err := s.gate.PatientByID(ctx, patientID, token); err != nil {
		return nil, err
	}

	conditions, err := s.conditions.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(conditions) == 0 {
		return nil, ErrNoHealthConditions
	}
	return conditions, nil
}

// AddMedication records a medication for the patient.
func (s *RecordService) AddMedication(ctx context.Context, patientID int64, req model.MedicationRequest, token string) (model.Medication, error) {
	if _, err := s.gate.PatientByID(ctx, patientID, token); err != nil {
		return model.Medication{}, err
	}
	if err := checkInfoObject(req.MedicationInfo); err != nil {
		return model.Medication{}, err
	}

	now := s.now().UTC()
	m := model.Medication{
		PatientID:           patientID,
		MedicationName:      req.MedicationName,
		Code:                req.Code,
		Dosage:              req.Dosage,
		DosageUnit:          req.DosageUnit,
		DosageForm:          req.DosageForm,
		DosageFrequency:     req.DosageFrequency,
		MedicationInfo:      req.MedicationInfo,
		MedicationStartDate: req.MedicationStartDate,
		Notes:               req.Notes,
		CreatedOn:           now,
		UpdatedOn:           now,
		Active:              boolOr(req.Active, true),
	}
	if err := s.medications.Create(ctx, &m); err != nil {
		return model.Medication{}, err
	}
	return m, nil
}

// ListMedications returns every medication recorded for the patient.
func (s *RecordService) ListMedications(ctx context.Context, patientID int64, token string) ([]model.Medication, error) {
	if _, err := s.gate.PatientByID(ctx, patientID, token); err != nil {
		return nil, err
	}

	medications, err := s.medications.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(medications) == 0 {
		return nil, ErrNoMedications
	}
	return medications, nil
}

// checkInfoObject accepts an absent value, JSON null, or a JSON object.
func checkInfoObject(raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return ErrInvalidInfo
	}
	return nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
