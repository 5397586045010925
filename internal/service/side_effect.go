package service

import (
	"context"
	"errors"
	"time"

	"github.com/healthsync/healthsync-go/internal/model"
	"github.com/healthsync/healthsync-go/internal/repository"
)

// SideEffectService manages adverse side effects and their observations.
// Observations are authorized against the owner of their parent side effect.
type SideEffectService struct {
	gate    *AccessGate
	effects *repository.SideEffectRepository
	now     func() time.Time
}

// NewSideEffectService creates a new SideEffectService.
func NewSideEffectService(gate *AccessGate, effects *repository.SideEffectRepository) *SideEffectService {
	return &SideEffectService{gate: gate, effects: effects, now: time.Now}
}

// AddAdverseSideEffect records a side effect reported by the patient.
func (s *SideEffectService) AddAdverseSideEffect(ctx context.Context, patientID int64, req model.AdverseSideEffectRequest, token string) (model.AdverseSideEffect, error) {
	if _, err := s.gate.PatientByID(ctx, patientID, token); err != nil {
		return model.AdverseSideEffect{}, err
	}

	now := s.now().UTC()
	e := model.AdverseSideEffect{
		PatientID: patientID,
		Symptom:   req.Symptom,
		Notes:     req.Notes,
		OnsetDate: req.OnsetDate,
		CreatedOn: now,
		UpdatedOn: now,
		Active:    true,
	}
	if err := s.effects.Create(ctx, &e); err != nil {
		return model.AdverseSideEffect{}, err
	}
	return e, nil
}

// ListAdverseSideEffects returns the patient's side effects, each with the
// patient's name and all recorded observations.
func (s *SideEffectService) ListAdverseSideEffects(ctx context.Context, patientID int64, token string) ([]model.AdverseSideEffectSummary, error) {
	p, err := s.gate.PatientByID(ctx, patientID, token)
	if err != nil {
		return nil, err
	}

	effects, err := s.effects.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(effects) == 0 {
		return nil, ErrNoSideEffects
	}

	ids := make([]int64, len(effects))
	for i, e := range effects {
		ids[i] = e.ID
	}
	details, err := s.effects.ListDetails(ctx, ids...)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.AdverseSideEffectSummary, len(effects))
	for i, e := range effects {
		d := details[e.ID]
		if d == nil {
			d = []model.AdverseSideEffectDetail{}
		}
		summaries[i] = model.AdverseSideEffectSummary{
			AdverseSideEffect: e,
			PatientName:       p.FullName(),
			Details:           d,
		}
	}
	return summaries, nil
}

// AddSideEffectDetail records an observation against an existing side effect.
func (s *SideEffectService) AddSideEffectDetail(ctx context.Context, req model.AdverseSideEffectDetailRequest, token string) (model.AdverseSideEffectDetail, error) {
	if _, err := s.authorizeSideEffect(ctx, req.AdverseSideEffectID, token); err != nil {
		return model.AdverseSideEffectDetail{}, err
	}

	now := s.now().UTC()
	d := model.AdverseSideEffectDetail{
		AdverseSideEffectID: req.AdverseSideEffectID,
		Observation:         req.Observation,
		ObservationValue:    req.ObservationValue,
		IntensityType:       req.IntensityType,
		IntensityScore:      req.IntensityScore,
		IntensityValue:      req.IntensityValue,
		TimeOfOccurrence:    req.TimeOfOccurrence,
		Notes:               req.Notes,
		CreatedOn:           now,
		UpdatedOn:           now,
		Active:              boolOr(req.Active, true),
	}
	if err := s.effects.CreateDetail(ctx, &d); err != nil {
		return model.AdverseSideEffectDetail{}, err
	}
	return d, nil
}

// ListSideEffectDetails returns the observations recorded for one side effect.
func (s *SideEffectService) ListSideEffectDetails(ctx context.Context, sideEffectID int64, token string) ([]model.AdverseSideEffectDetail, error) {
	if _, err := s.authorizeSideEffect(ctx, sideEffectID, token); err != nil {
		return nil, err
	}

	details, err := s.effects.ListDetails(ctx, sideEffectID)
	if err != nil {
		return nil, err
	}
	if len(details[sideEffectID]) == 0 {
		return nil, ErrNoSideEffectDetail
	}
	return details[sideEffectID], nil
}

func (s *SideEffectService) authorizeSideEffect(ctx context.Context, sideEffectID int64, token string) (*model.AdverseSideEffect, error) {
	e, err := s.effects.GetByID(ctx, sideEffectID)
	if err != nil {
		if errors.Is(err, repository.ErrSideEffectNotFound) {
			return nil, ErrSideEffectNotFound
		}
		return nil, err
	}
	if _, err := s.gate.PatientByID(ctx, e.PatientID, token); err != nil {
		return nil, err
	}
	return e, nil
}
