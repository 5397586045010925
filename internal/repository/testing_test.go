package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/healthsync/healthsync-go/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(DBConfig{Dialect: SQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db, SQLite))
	return db
}

func seedPatient(t *testing.T, db *sql.DB, email string) *model.Patient {
	t.Helper()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &model.Patient{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          email,
		HashedPassword: "$2a$04$hash",
		CreatedOn:      now,
		UpdatedOn:      now,
		Active:         true,
	}
	require.NoError(t, NewPatientRepository(db).Create(context.Background(), p))
	return p
}

func strPtr(s string) *string { return &s }
