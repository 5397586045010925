package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/healthsync/healthsync-go/internal/crypto"
	"github.com/healthsync/healthsync-go/internal/model"
	"github.com/healthsync/healthsync-go/internal/repository"
)

// AccessGate resolves a patient and checks that a bearer token was issued
// to that patient. Every patient-scoped operation goes through it before
// touching the patient's records.
type AccessGate struct {
	patients *repository.PatientRepository
	tokens   *crypto.TokenManager
}

// NewAccessGate creates a new AccessGate.
func NewAccessGate(patients *repository.PatientRepository, tokens *crypto.TokenManager) *AccessGate {
	return &AccessGate{patients: patients, tokens: tokens}
}

// PatientByID resolves the patient and authorizes token against them.
func (g *AccessGate) PatientByID(ctx context.Context, patientID int64, token string) (*model.Patient, error) {
	p, err := g.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, mapPatientErr(err)
	}
	if err := g.authorize(p, token); err != nil {
		return nil, err
	}
	return p, nil
}

// PatientByEmail resolves the patient and authorizes token against them.
func (g *AccessGate) PatientByEmail(ctx context.Context, email, token string) (*model.Patient, error) {
	p, err := g.patients.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, mapPatientErr(err)
	}
	if err := g.authorize(p, token); err != nil {
		return nil, err
	}
	return p, nil
}

func (g *AccessGate) authorize(p *model.Patient, token string) error {
	subject, err := g.tokens.Verify(token)
	if err != nil {
		return withKind(ErrUnauthorized, err)
	}
	if normalizeEmail(subject) != p.Email {
		return ErrForbidden
	}
	return nil
}

func mapPatientErr(err error) error {
	if errors.Is(err, repository.ErrPatientNotFound) {
		return ErrPatientNotFound
	}
	return fmt.Errorf("lookup patient: %w", err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
