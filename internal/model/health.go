package model

import (
	"encoding/json"
	"time"
)

// HealthCondition is a diagnosed condition owned by a patient.
type HealthCondition struct {
	ID            int64           `json:"health_condition_id"`
	PatientID     int64           `json:"patient_id"`
	ConditionName string          `json:"condition_name"`
	Code          *string         `json:"code"`
	DiagnosedOn   *Date           `json:"diagnosed_on"`
	ConditionInfo json.RawMessage `json:"condition_info"`
	Notes         *string         `json:"notes"`
	CreatedOn     time.Time       `json:"created_on"`
	UpdatedOn     time.Time       `json:"updated_on"`
	Active        bool            `json:"active"`
}

// HealthConditionRequest represents a request to record a health condition.
// ConditionInfo must be a JSON object when present.
type HealthConditionRequest struct {
	ConditionName string          `json:"condition_name" validate:"required"`
	Code          *string         `json:"code"`
	DiagnosedOn   *Date           `json:"diagnosed_on"`
	ConditionInfo json.RawMessage `json:"condition_info"`
	Notes         *string         `json:"notes"`
}

// Medication is a medication taken by a patient.
type Medication struct {
	ID                  int64           `json:"medication_id"`
	PatientID           int64           `json:"patient_id"`
	MedicationName      string          `json:"medication_name"`
	Code                *string         `json:"code"`
	Dosage              *float64        `json:"dosage"`
	DosageUnit          *string         `json:"dosage_unit"`
	DosageForm          *string         `json:"dosage_form"`
	DosageFrequency     *string         `json:"dosage_frequency"`
	MedicationInfo      json.RawMessage `json:"medication_info"`
	MedicationStartDate *Date           `json:"medication_start_date"`
	Notes               *string         `json:"notes"`
	CreatedOn           time.Time       `json:"created_on"`
	UpdatedOn           time.Time       `json:"updated_on"`
	Active              bool            `json:"active"`
}

// MedicationRequest represents a request to record a medication.
// Active defaults to true when omitted.
type MedicationRequest struct {
	MedicationName      string          `json:"medication_name" validate:"required"`
	Code                *string         `json:"code"`
	Dosage              *float64        `json:"dosage" validate:"omitempty,gte=0"`
	DosageUnit          *string         `json:"dosage_unit"`
	DosageForm          *string         `json:"dosage_form"`
	DosageFrequency     *string         `json:"dosage_frequency"`
	MedicationInfo      json.RawMessage `json:"medication_info"`
	MedicationStartDate *Date           `json:"medication_start_date"`
	Notes               *string         `json:"notes"`
	Active              *bool           `json:"active"`
}
