package service

import (
	"database/sql"

	"github.com/healthsync/healthsync-go/internal/crypto"
	"github.com/healthsync/healthsync-go/internal/repository"
)

// Services bundles every service built on one database.
type Services struct {
	Auth        *AuthService
	Patients    *PatientService
	Records     *RecordService
	SideEffects *SideEffectService
	Providers   *ProviderService
}

// NewServices wires repositories and services for db.
func NewServices(db *sql.DB, dialect repository.Dialect, tokens *crypto.TokenManager, hasher *crypto.Hasher) *Services {
	patients := repository.NewPatientRepository(db)
	gate := NewAccessGate(patients, tokens)

	return &Services{
		Auth:     NewAuthService(patients, tokens, hasher),
		Patients: NewPatientService(gate),
		Records: NewRecordService(gate,
			repository.NewHealthConditionRepository(db),
			repository.NewMedicationRepository(db),
		),
		SideEffects: NewSideEffectService(gate, repository.NewSideEffectRepository(db)),
		Providers:   NewProviderService(gate, repository.NewProviderRepository(db, dialect)),
	}
}
