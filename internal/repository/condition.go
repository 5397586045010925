package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/healthsync/healthsync-go/internal/model"
)

// HealthConditionRepository handles health condition persistence operations.
type HealthConditionRepository struct {
	db *sql.DB
}

// NewHealthConditionRepository creates a new HealthConditionRepository.
func NewHealthConditionRepository(db *sql.DB) *HealthConditionRepository {
	return &HealthConditionRepository{db: db}
}

// Create inserts a health condition and sets its generated ID.
func (r *HealthConditionRepository) Create(ctx context.Context, c *model.HealthCondition) error {
	query := `INSERT INTO health_condition (patient_id, condition_name, code, diagnosed_on,
		condition_info, notes, created_on, updated_on, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		c.PatientID, c.ConditionName, nullString(c.Code), nullDate(c.DiagnosedOn),
		nullJSON(c.ConditionInfo), nullString(c.Notes), c.CreatedOn, c.UpdatedOn, c.Active,
	)
	if err != nil {
		return fmt.Errorf("insert health condition: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("health condition last insert id: %w", err)
	}

	c.ID = id
	return nil
}

// ListByPatient retrieves all health conditions for a patient in insertion order.
func (r *HealthConditionRepository) ListByPatient(ctx context.Context, patientID int64) ([]model.HealthCondition, error) {
	query := `SELECT health_condition_id, patient_id, condition_name, code, diagnosed_on,
		condition_info, notes, created_on, updated_on, active
		FROM health_condition WHERE patient_id = ? ORDER BY health_condition_id`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("query health conditions: %w", err)
	}
	defer rows.Close()

	var conditions []model.HealthCondition
	for rows.Next() {
		var (
			c           model.HealthCondition
			code, notes sql.NullString
			info        sql.NullString
			diagnosedOn sql.NullTime
		)
		if err := rows.Scan(
			&c.ID, &c.PatientID, &c.ConditionName, &code, &diagnosedOn,
			&info, &notes, &c.CreatedOn, &c.UpdatedOn, &c.Active,
		); err != nil {
			return nil, fmt.Errorf("scan health condition: %w", err)
		}
		c.Code = stringPtr(code)
		c.Notes = stringPtr(notes)
		c.ConditionInfo = jsonRaw(info)
		c.DiagnosedOn = datePtr(diagnosedOn)
		conditions = append(conditions, c)
	}

	return conditions, rows.Err()
}
