package service

import (
	"context"

	"github.com/healthsync/healthsync-go/internal/model"
)

// PatientService serves patient profile lookups.
type PatientService struct {
	gate *AccessGate
}

// NewPatientService creates a new PatientService.
func NewPatientService(gate *AccessGate) *PatientService {
	return &PatientService{gate: gate}
}

// GetPatientByEmail returns the patient registered under email.
func (s *PatientService) GetPatientByEmail(ctx context.Context, email, token string) (model.Patient, error) {
	p, err := s.gate.PatientByEmail(ctx, email, token)
	if err != nil {
		return model.Patient{}, err
	}
	return *p, nil
}
