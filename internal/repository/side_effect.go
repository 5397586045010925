package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/healthsync/healthsync-go/internal/model"
)

var ErrSideEffectNotFound = errors.New("adverse side effect not found")

// SideEffectRepository handles adverse side effects and their observation details.
type SideEffectRepository struct {
	db *sql.DB
}

// NewSideEffectRepository creates a new SideEffectRepository.
func NewSideEffectRepository(db *sql.DB) *SideEffectRepository {
	return &SideEffectRepository{db: db}
}

// Create inserts an adverse side effect and sets its generated ID.
func (r *SideEffectRepository) Create(ctx context.Context, e *model.AdverseSideEffect) error {
	query := `INSERT INTO adverse_side_effect (patient_id, symptom, notes, onset_date,
		created_on, updated_on, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		e.PatientID, e.Symptom, nullString(e.Notes), nullDate(e.OnsetDate),
		e.CreatedOn, e.UpdatedOn, e.Active,
	)
	if err != nil {
		return fmt.Errorf("insert adverse side effect: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("adverse side effect last insert id: %w", err)
	}

	e.ID = id
	return nil
}

// GetByID retrieves a single adverse side effect.
func (r *SideEffectRepository) GetByID(ctx context.Context, id int64) (*model.AdverseSideEffect, error) {
	query := `SELECT adverse_side_effect_id, patient_id, symptom, notes, onset_date,
		created_on, updated_on, active
		FROM adverse_side_effect WHERE adverse_side_effect_id = ?`

	e, err := scanSideEffect(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSideEffectNotFound
		}
		return nil, err
	}
	return e, nil
}

// ListByPatient retrieves all adverse side effects reported by a patient.
func (r *SideEffectRepository) ListByPatient(ctx context.Context, patientID int64) ([]model.AdverseSideEffect, error) {
	query := `SELECT adverse_side_effect_id, patient_id, symptom, notes, onset_date,
		created_on, updated_on, active
		FROM adverse_side_effect WHERE patient_id = ? ORDER BY adverse_side_effect_id`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("query adverse side effects: %w", err)
	}
	defer rows.Close()

	var effects []model.AdverseSideEffect
	for rows.Next() {
		e, err := scanSideEffect(rows)
		if err != nil {
			return nil, err
		}
		effects = append(effects, *e)
	}

	return effects, rows.Err()
}

// CreateDetail inserts an observation for an existing side effect.
func (r *SideEffectRepository) CreateDetail(ctx context.Context, d *model.AdverseSideEffectDetail) error {
	query := `INSERT INTO adverse_side_effect_detail (adverse_side_effect_id, observation,
		observation_value, intensity_type, intensity_score, intensity_value, time_of_occurrence,
		notes, created_on, updated_on, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		d.AdverseSideEffectID, nullString(d.Observation), nullString(d.ObservationValue),
		nullString(d.IntensityType), nullInt(d.IntensityScore), nullString(d.IntensityValue),
		nullTime(d.TimeOfOccurrence), nullString(d.Notes), d.CreatedOn, d.UpdatedOn, d.Active,
	)
	if err != nil {
		return fmt.Errorf("insert adverse side effect detail: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("adverse side effect detail last insert id: %w", err)
	}

	d.ID = id
	return nil
}

// ListDetails retrieves the observations recorded for the given side effects,
// grouped by side effect ID.
func (r *SideEffectRepository) ListDetails(ctx context.Context, sideEffectIDs ...int64) (map[int64][]model.AdverseSideEffectDetail, error) {
	details := make(map[int64][]model.AdverseSideEffectDetail, len(sideEffectIDs))
	if len(sideEffectIDs) == 0 {
		return details, nil
	}

	placeholders := make([]byte, 0, len(sideEffectIDs)*2)
	args := make([]any, len(sideEffectIDs))
	for i, id := range sideEffectIDs {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args[i] = id
	}

	query := `SELECT adverse_side_effect_detail_id, adverse_side_effect_id, observation,
		observation_value, intensity_type, intensity_score, intensity_value, time_of_occurrence,
		notes, created_on, updated_on, active
		FROM adverse_side_effect_detail WHERE adverse_side_effect_id IN (` + string(placeholders) + `)
		ORDER BY adverse_side_effect_detail_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query adverse side effect details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			d                                   model.AdverseSideEffectDetail
			observation, value, kind, intensity sql.NullString
			notes                               sql.NullString
			score                               sql.NullInt64
			occurredAt                          sql.NullTime
		)
		if err := rows.Scan(
			&d.ID, &d.AdverseSideEffectID, &observation,
			&value, &kind, &score, &intensity, &occurredAt,
			&notes, &d.CreatedOn, &d.UpdatedOn, &d.Active,
		); err != nil {
			return nil, fmt.Errorf("scan adverse side effect detail: %w", err)
		}
		d.Observation = stringPtr(observation)
		d.ObservationValue = stringPtr(value)
		d.IntensityType = stringPtr(kind)
		d.IntensityScore = intPtr(score)
		d.IntensityValue = stringPtr(intensity)
		d.TimeOfOccurrence = timePtr(occurredAt)
		d.Notes = stringPtr(notes)
		details[d.AdverseSideEffectID] = append(details[d.AdverseSideEffectID], d)
	}

	return details, rows.Err()
}

func scanSideEffect(row scanner) (*model.AdverseSideEffect, error) {
	var (
		e         model.AdverseSideEffect
		notes     sql.NullString
		onsetDate sql.NullTime
	)
	if err := row.Scan(
		&e.ID, &e.PatientID, &e.Symptom, &notes, &onsetDate,
		&e.CreatedOn, &e.UpdatedOn, &e.Active,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan adverse side effect: %w", err)
	}
	e.Notes = stringPtr(notes)
	e.OnsetDate = datePtr(onsetDate)
	return &e, nil
}
