package service

import (
	"context"
	"time"

	"github.com/healthsync/healthsync-go/internal/logging"
	"github.com/healthsync/healthsync-go/internal/model"
	"github.com/healthsync/healthsync-go/internal/repository"
)

// ProviderService links care providers to patients.
type ProviderService struct {
	gate      *AccessGate
	providers *repository.ProviderRepository
	now       func() time.Time
}

// NewProviderService creates a new ProviderService.
func NewProviderService(gate *AccessGate, providers *repository.ProviderRepository) *ProviderService {
	return &ProviderService{gate: gate, providers: providers, now: time.Now}
}

// LinkProvider finds or creates the provider by NPI number and links it to
// the patient. Repeating the call returns the existing provider and link.
func (s *ProviderService) LinkProvider(ctx context.Context, patientID int64, req model.ProviderRequest, token string) (model.ProviderLinkResponse, error) {
	if _, err := s.gate.PatientByID(ctx, patientID, token); err != nil {
		return model.ProviderLinkResponse{}, err
	}

	now := s.now().UTC()
	provider := &model.Provider{
		Name:            req.Name,
		NPINumber:       req.NPINumber,
		SpecialityType:  req.SpecialityType,
		Speciality:      req.Speciality,
		Phone:           req.Phone,
		Email:           req.Email,
		PrimaryFacility: req.PrimaryFacility,
		CreatedOn:       now,
		UpdatedOn:       now,
		Active:          true,
	}
	link := &model.PatientProviderLink{
		PatientID:               patientID,
		ProviderPortalPatientID: req.ProviderPortalPatientID,
		PatientSince:            req.PatientSince,
		LastVisit:               req.LastVisit,
	}

	resp, err := s.providers.LinkProvider(ctx, provider, link)
	if err != nil {
		return model.ProviderLinkResponse{}, err
	}

	logging.FromContext(ctx).Info("provider linked",
		"patient_id", patientID,
		"provider_id", resp.ID,
		"link_id", resp.Link.ID,
	)
	return *resp, nil
}

// ListProviders returns every provider linked to the patient.
func (s *ProviderService) ListProviders(ctx context.Context, patientID int64, token string) ([]model.ProviderLinkResponse, error) {
	if _, err := s.gate.PatientByID(ctx, patientID, token); err != nil {
		return nil, err
	}

	providers, err := s.providers.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	return providers, nil
}
