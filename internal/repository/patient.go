package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/healthsync/healthsync-go/internal/model"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrDuplicateEmail  = errors.New("email already exists")
)

const patientColumns = `patient_id, first_name, last_name, gender, date_of_birth, phone, email,
	hashed_password, address, created_on, updated_on, active`

// PatientRepository handles patient persistence operations.
type PatientRepository struct {
	db *sql.DB
}

// NewPatientRepository creates a new PatientRepository.
func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// Create inserts a new patient and sets the generated ID on the patient struct.
// The unique index on email turns a concurrent duplicate into ErrDuplicateEmail.
func (r *PatientRepository) Create(ctx context.Context, p *model.Patient) error {
	query := `INSERT INTO patient (first_name, last_name, gender, date_of_birth, phone, email,
		hashed_password, address, created_on, updated_on, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		p.FirstName, p.LastName, nullString(p.Gender), nullDate(p.DateOfBirth), nullString(p.Phone),
		p.Email, p.HashedPassword, nullString(p.Address), p.CreatedOn, p.UpdatedOn, p.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert patient: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("patient last insert id: %w", err)
	}

	p.ID = id
	return nil
}

// GetByEmail retrieves a patient by their email address.
func (r *PatientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patient WHERE email = ?`
	return scanPatient(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a patient by their ID.
func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patient WHERE patient_id = ?`
	return scanPatient(r.db.QueryRowContext(ctx, query, id))
}

// Ping checks that the database answers a trivial query.
func (r *PatientRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if one != 1 {
		return fmt.Errorf("ping database: unexpected result %d", one)
	}
	return nil
}

func scanPatient(row scanner) (*model.Patient, error) {
	var (
		p                      model.Patient
		gender, phone, address sql.NullString
		dateOfBirth            sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &gender, &dateOfBirth, &phone, &p.Email,
		&p.HashedPassword, &address, &p.CreatedOn, &p.UpdatedOn, &p.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("scan patient: %w", err)
	}

	p.Gender = stringPtr(gender)
	p.Phone = stringPtr(phone)
	p.Address = stringPtr(address)
	p.DateOfBirth = datePtr(dateOfBirth)
	return &p, nil
}
