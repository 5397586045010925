package model

import "time"

// Provider is a care provider shared between patients, unique by NPI number.
type Provider struct {
	ID              int64     `json:"provider_id"`
	Name            string    `json:"name"`
	NPINumber       string    `json:"npi_number"`
	SpecialityType  *string   `json:"speciality_type"`
	Speciality      *string   `json:"speciality"`
	Phone           *string   `json:"phone"`
	Email           *string   `json:"email"`
	PrimaryFacility *string   `json:"primary_facility"`
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
	Active          bool      `json:"active"`
}

// PatientProviderLink associates a patient with a provider.
type PatientProviderLink struct {
	ID                      int64   `json:"patient_provider_xref_id"`
	PatientID               int64   `json:"patient_id"`
	ProviderID              int64   `json:"provider_id"`
	ProviderPortalPatientID *string `json:"provider_portal_patient_id"`
	PatientSince            *Date   `json:"patient_since"`
	LastVisit               *Date   `json:"last_visit"`
}

// ProviderRequest represents a request to link a provider to a patient.
type ProviderRequest struct {
	Name                    string  `json:"name" validate:"required"`
	NPINumber               string  `json:"npi_number" validate:"required"`
	SpecialityType          *string `json:"speciality_type"`
	Speciality              *string `json:"speciality"`
	Phone                   *string `json:"phone"`
	Email                   *string `json:"email" validate:"omitempty,email"`
	PrimaryFacility         *string `json:"primary_facility"`
	ProviderPortalPatientID *string `json:"provider_portal_patient_id"`
	PatientSince            *Date   `json:"patient_since"`
	LastVisit               *Date   `json:"last_visit"`
}

// ProviderLinkResponse is a provider as seen from one patient's record.
type ProviderLinkResponse struct {
	Provider
	Link PatientProviderLink `json:"link"`
}
