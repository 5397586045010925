package service

import (
	"context"
	"errors"
	"time"

	"github.com/healthsync/healthsync-go/internal/crypto"
	"github.com/healthsync/healthsync-go/internal/logging"
	"github.com/healthsync/healthsync-go/internal/model"
	"github.com/healthsync/healthsync-go/internal/repository"
)

// TokenType is reported alongside issued tokens.
const TokenType = "bearer"

// AuthService handles registration and login.
type AuthService struct {
	repo   *repository.PatientRepository
	tokens *crypto.TokenManager
	hasher *crypto.Hasher
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.PatientRepository, tokens *crypto.TokenManager, hasher *crypto.Hasher) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		now:    time.Now,
	}
}

// Register creates a new patient account. Emails are stored normalized so
// that identity comparisons are case-insensitive.
func (s *AuthService) Register(ctx context.Context, req model.CreatePatientRequest) (model.PatientCreateResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return model.PatientCreateResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.PatientCreateResponse{}, ErrPasswordRequired
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return model.PatientCreateResponse{}, withKind(ErrInvalidInput, err)
		}
		return model.PatientCreateResponse{}, err
	}

	now := s.now().UTC()
	patient := &model.Patient{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Gender:         req.Gender,
		DateOfBirth:    req.DateOfBirth,
		Phone:          req.Phone,
		Email:          email,
		HashedPassword: hash,
		Address:        req.Address,
		CreatedOn:      now,
		UpdatedOn:      now,
		Active:         true,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.PatientCreateResponse{}, ErrEmailTaken
		}
		return model.PatientCreateResponse{}, err
	}

	logging.FromContext(ctx).Info("patient registered", "patient_id", patient.ID)

	return model.PatientCreateResponse{
		PatientID: patient.ID,
		FirstName: patient.FirstName,
		LastName:  patient.LastName,
		Email:     patient.Email,
	}, nil
}

// Login authenticates a patient and returns a bearer token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	patient, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if !s.hasher.Verify(req.Password, patient.HashedPassword) {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(patient.Email)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		Token:          token,
		TokenType:      TokenType,
		PatientDetails: *patient,
	}, nil
}
