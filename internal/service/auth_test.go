package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthsync/healthsync-go/internal/crypto"
	"github.com/healthsync/healthsync-go/internal/model"
	"github.com/healthsync/healthsync-go/internal/repository"
)

type testEnv struct {
	tokens      *crypto.TokenManager
	auth        *AuthService
	patients    *PatientService
	records     *RecordService
	sideEffects *SideEffectService
	providers   *ProviderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.NewDB(repository.DBConfig{Dialect: repository.SQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.Migrate(context.Background(), db, repository.SQLite))

	tokens, err := crypto.NewTokenManager("test-secret", crypto.DefaultTokenTTL)
	require.NoError(t, err)

	patientRepo := repository.NewPatientRepository(db)
	gate := NewAccessGate(patientRepo, tokens)

	return &testEnv{
		tokens:      tokens,
		auth:        NewAuthService(patientRepo, tokens, crypto.NewHasher(bcrypt.MinCost)),
		patients:    NewPatientService(gate),
		records:     NewRecordService(gate, repository.NewHealthConditionRepository(db), repository.NewMedicationRepository(db)),
		sideEffects: NewSideEffectService(gate, repository.NewSideEffectRepository(db)),
		providers:   NewProviderService(gate, repository.NewProviderRepository(db, repository.SQLite)),
	}
}

// register creates a patient and returns its id together with a valid token.
func (e *testEnv) register(t *testing.T, email string) (int64, string) {
	t.Helper()

	created, err := e.auth.Register(context.Background(), model.CreatePatientRequest{
		FirstName: "A",
		LastName:  "B",
		Email:     email,
		Password:  "secret123",
	})
	require.NoError(t, err)

	login, err := e.auth.Login(context.Background(), model.LoginRequest{Email: email, Password: "secret123"})
	require.NoError(t, err)
	return created.PatientID, login.Token
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		req     model.CreatePatientRequest
		wantErr error
	}{
		{
			name:    "empty email",
			req:     model.CreatePatientRequest{FirstName: "A", LastName: "B", Password: "secret123"},
			wantErr: ErrEmailRequired,
		},
		{
			name:    "blank email",
			req:     model.CreatePatientRequest{FirstName: "A", LastName: "B", Email: "   ", Password: "secret123"},
			wantErr: ErrEmailRequired,
		},
		{
			name:    "empty password",
			req:     model.CreatePatientRequest{FirstName: "A", LastName: "B", Email: "a@x.com"},
			wantErr: ErrPasswordRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegister_PasswordTooLong(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), model.CreatePatientRequest{
		FirstName: "A", LastName: "B", Email: "a@x.com", Password: strings.Repeat("p", 100),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, crypto.ErrPasswordTooLong)
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.auth.Register(ctx, model.CreatePatientRequest{
		FirstName: "A", LastName: "B", Email: "a@x.com", Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, first.PatientID)
	assert.Equal(t, "a@x.com", first.Email)

	_, err = env.auth.Register(ctx, model.CreatePatientRequest{
		FirstName: "C", LastName: "D", Email: "A@X.com ", Password: "other-pass",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)

	login, err := env.auth.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, first.PatientID, login.PatientDetails.ID)
	assert.Equal(t, "A", login.PatientDetails.FirstName)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id, _ := env.register(t, "login@example.com")

	t.Run("success returns verifiable token", func(t *testing.T) {
		resp, err := env.auth.Login(ctx, model.LoginRequest{Email: "Login@Example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, TokenType, resp.TokenType)
		assert.Equal(t, id, resp.PatientDetails.ID)

		subject, err := env.tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "login@example.com", subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.auth.Login(ctx, model.LoginRequest{Email: "login@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := env.auth.Login(ctx, model.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegister_UsesServiceClock(t *testing.T) {
	env := newTestEnv(t)
	fixed := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	env.auth.now = func() time.Time { return fixed }

	_, err := env.auth.Register(context.Background(), model.CreatePatientRequest{
		FirstName: "A", LastName: "B", Email: "clock@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	resp, err := env.auth.Login(context.Background(), model.LoginRequest{Email: "clock@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, resp.PatientDetails.CreatedOn.Equal(fixed))
	assert.True(t, resp.PatientDetails.Active)
}

func TestCategorizedErrors(t *testing.T) {
	cause := errors.New("boom")
	err := withKind(ErrNotFound, cause)

	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, "email already registered", ErrEmailTaken.Error())
}
