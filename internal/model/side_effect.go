package model

import "time"

// AdverseSideEffect is a symptom reported by a patient.
type AdverseSideEffect struct {
	ID        int64     `json:"adverse_side_effect_id"`
	PatientID int64     `json:"patient_id"`
	Symptom   string    `json:"symptom"`
	Notes     *string   `json:"notes"`
	OnsetDate *Date     `json:"onset_date"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
	Active    bool      `json:"active"`
}

// AdverseSideEffectRequest represents a request to report a side effect.
type AdverseSideEffectRequest struct {
	Symptom   string  `json:"symptom" validate:"required"`
	Notes     *string `json:"notes"`
	OnsetDate *Date   `json:"onset_date"`
}

// AdverseSideEffectDetail is a single observation recorded against a side effect.
type AdverseSideEffectDetail struct {
	ID                  int64      `json:"adverse_side_effect_detail_id"`
	AdverseSideEffectID int64      `json:"adverse_side_effect_id"`
	Observation         *string    `json:"observation"`
	ObservationValue    *string    `json:"observation_value"`
	IntensityType       *string    `json:"intensity_type"`
	IntensityScore      *int       `json:"intensity_score"`
	IntensityValue      *string    `json:"intensity_value"`
	TimeOfOccurrence    *time.Time `json:"time_of_occurrence"`
	Notes               *string    `json:"notes"`
	CreatedOn           time.Time  `json:"created_on"`
	UpdatedOn           time.Time  `json:"updated_on"`
	Active              bool       `json:"active"`
}

// AdverseSideEffectDetailRequest represents a request to record an observation.
type AdverseSideEffectDetailRequest struct {
	AdverseSideEffectID int64      `json:"adverse_side_effect_id" validate:"required,gt=0"`
	Observation         *string    `json:"observation"`
	ObservationValue    *string    `json:"observation_value"`
	IntensityType       *string    `json:"intensity_type"`
	IntensityScore      *int       `json:"intensity_score" validate:"omitempty,gte=0,lte=10"`
	IntensityValue      *string    `json:"intensity_value"`
	TimeOfOccurrence    *time.Time `json:"time_of_occurrence"`
	Notes               *string    `json:"notes"`
	Active              *bool      `json:"active"`
}

// AdverseSideEffectSummary is a side effect together with its owner's name
// and every recorded observation.
type AdverseSideEffectSummary struct {
	AdverseSideEffect
	PatientName string                    `json:"patient_name"`
	Details     []AdverseSideEffectDetail `json:"details"`
}
