package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/healthsync/healthsync-go/internal/model"
)

// MedicationRepository handles medication persistence operations.
type MedicationRepository struct {
	db *sql.DB
}

// NewMedicationRepository creates a new MedicationRepository.
func NewMedicationRepository(db *sql.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

// Create inserts a medication and sets its generated ID.
func (r *MedicationRepository) Create(ctx context.Context, m *model.Medication) error {
	query := `INSERT INTO medication (patient_id, medication_name, code, dosage, dosage_unit,
		dosage_form, dosage_frequency, medication_info, medication_start_date, notes,
		created_on, updated_on, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		m.PatientID, m.MedicationName, nullString(m.Code), nullFloat(m.Dosage), nullString(m.DosageUnit),
		nullString(m.DosageForm), nullString(m.DosageFrequency), nullJSON(m.MedicationInfo),
		nullDate(m.MedicationStartDate), nullString(m.Notes), m.CreatedOn, m.UpdatedOn, m.Active,
	)
	if err != nil {
		return fmt.Errorf("insert medication: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("medication last insert id: %w", err)
	}

	m.ID = id
	return nil
}

// ListByPatient retrieves all medications for a patient in insertion order.
func (r *MedicationRepository) ListByPatient(ctx context.Context, patientID int64) ([]model.Medication, error) {
	query := `SELECT medication_id, patient_id, medication_name, code, dosage, dosage_unit,
		dosage_form, dosage_frequency, medication_info, medication_start_date, notes,
		created_on, updated_on, active
		FROM medication WHERE patient_id = ? ORDER BY medication_id`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("query medications: %w", err)
	}
	defer rows.Close()

	var medications []model.Medication
	for rows.Next() {
		var (
			m                             model.Medication
			code, unit, form, freq, notes sql.NullString
			info                          sql.NullString
			dosage                        sql.NullFloat64
			startDate                     sql.NullTime
		)
		if err := rows.Scan(
			&m.ID, &m.PatientID, &m.MedicationName, &code, &dosage, &unit,
			&form, &freq, &info, &startDate, &notes,
			&m.CreatedOn, &m.UpdatedOn, &m.Active,
		); err != nil {
			return nil, fmt.Errorf("scan medication: %w", err)
		}
		m.Code = stringPtr(code)
		m.Dosage = floatPtr(dosage)
		m.DosageUnit = stringPtr(unit)
		m.DosageForm = stringPtr(form)
		m.DosageFrequency = stringPtr(freq)
		m.MedicationInfo = jsonRaw(info)
		m.MedicationStartDate = datePtr(startDate)
		m.Notes = stringPtr(notes)
		medications = append(medications, m)
	}

	return medications, rows.Err()
}
