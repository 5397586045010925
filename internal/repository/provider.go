package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/healthsync/healthsync-go/internal/model"
)

const providerColumns = `p.provider_id, p.name, p.npi_number, p.speciality_type, p.speciality,
	p.phone, p.email, p.primary_facility, p.created_on, p.updated_on, p.active`

const linkColumns = `x.patient_provider_xref_id, x.patient_id, x.provider_id,
	x.provider_portal_patient_id, x.patient_since, x.last_visit`

// ProviderRepository handles providers and their links to patients.
type ProviderRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewProviderRepository creates a new ProviderRepository.
func NewProviderRepository(db *sql.DB, dialect Dialect) *ProviderRepository {
	return &ProviderRepository{db: db, dialect: dialect}
}

// LinkProvider finds or creates the provider identified by p.NPINumber and
// links it to link.PatientID. Both steps rely on unique constraints so that
// repeated or concurrent calls converge on a single provider row and a
// single link row. An existing provider's attributes are left unchanged.
func (r *ProviderRepository) LinkProvider(ctx context.Context, p *model.Provider, link *model.PatientProviderLink) (*model.ProviderLinkResponse, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	insertProvider := `INSERT INTO provider (name, npi_number, speciality_type, speciality, phone,
		email, primary_facility, created_on, updated_on, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ` + r.dialect.ignoreDuplicate("npi_number", "provider_id")

	if _, err := tx.ExecContext(ctx, insertProvider,
		p.Name, p.NPINumber, nullString(p.SpecialityType), nullString(p.Speciality), nullString(p.Phone),
		nullString(p.Email), nullString(p.PrimaryFacility), p.CreatedOn, p.UpdatedOn, p.Active,
	); err != nil {
		return nil, fmt.Errorf("insert provider: %w", err)
	}

	selectProvider := `SELECT ` + providerColumns + ` FROM provider p WHERE p.npi_number = ?`
	provider, err := scanProvider(tx.QueryRowContext(ctx, selectProvider, p.NPINumber))
	if err != nil {
		return nil, err
	}

	insertLink := `INSERT INTO patient_provider_xref (patient_id, provider_id,
		provider_portal_patient_id, patient_since, last_visit)
		VALUES (?, ?, ?, ?, ?) ` + r.dialect.ignoreDuplicate("patient_id, provider_id", "patient_provider_xref_id")

	if _, err := tx.ExecContext(ctx, insertLink,
		link.PatientID, provider.ID, nullString(link.ProviderPortalPatientID),
		nullDate(link.PatientSince), nullDate(link.LastVisit),
	); err != nil {
		return nil, fmt.Errorf("insert provider link: %w", err)
	}

	selectLink := `SELECT ` + linkColumns + ` FROM patient_provider_xref x
		WHERE x.patient_id = ? AND x.provider_id = ?`
	stored, err := scanLink(tx.QueryRowContext(ctx, selectLink, link.PatientID, provider.ID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &model.ProviderLinkResponse{Provider: *provider, Link: *stored}, nil
}

// ListByPatient retrieves every provider linked to a patient.
func (r *ProviderRepository) ListByPatient(ctx context.Context, patientID int64) ([]model.ProviderLinkResponse, error) {
	query := `SELECT ` + providerColumns + `, ` + linkColumns + `
		FROM patient_provider_xref x
		JOIN provider p ON p.provider_id = x.provider_id
		WHERE x.patient_id = ?
		ORDER BY x.patient_provider_xref_id`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("query providers: %w", err)
	}
	defer rows.Close()

	var providers []model.ProviderLinkResponse
	for rows.Next() {
		var (
			resp model.ProviderLinkResponse
			pf   providerFields
			lf   linkFields
		)
		if err := rows.Scan(append(pf.dest(&resp.Provider), lf.dest(&resp.Link)...)...); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		pf.apply(&resp.Provider)
		lf.apply(&resp.Link)
		providers = append(providers, resp)
	}

	return providers, rows.Err()
}

type providerFields struct {
	specialityType, speciality, phone, email, facility sql.NullString
}

func (f *providerFields) dest(p *model.Provider) []any {
	return []any{
		&p.ID, &p.Name, &p.NPINumber, &f.specialityType, &f.speciality,
		&f.phone, &f.email, &f.facility, &p.CreatedOn, &p.UpdatedOn, &p.Active,
	}
}

func (f *providerFields) apply(p *model.Provider) {
	p.SpecialityType = stringPtr(f.specialityType)
	p.Speciality = stringPtr(f.speciality)
	p.Phone = stringPtr(f.phone)
	p.Email = stringPtr(f.email)
	p.PrimaryFacility = stringPtr(f.facility)
}

type linkFields struct {
	portalID            sql.NullString
	patientSince, visit sql.NullTime
}

func (f *linkFields) dest(l *model.PatientProviderLink) []any {
	return []any{&l.ID, &l.PatientID, &l.ProviderID, &f.portalID, &f.patientSince, &f.visit}
}

func (f *linkFields) apply(l *model.PatientProviderLink) {
	l.ProviderPortalPatientID = stringPtr(f.portalID)
	l.PatientSince = datePtr(f.patientSince)
	l.LastVisit = datePtr(f.visit)
}

func scanProvider(row scanner) (*model.Provider, error) {
	var (
		p  model.Provider
		pf providerFields
	)
	if err := row.Scan(pf.dest(&p)...); err != nil {
		return nil, fmt.Errorf("scan provider: %w", err)
	}
	pf.apply(&p)
	return &p, nil
}

func scanLink(row scanner) (*model.PatientProviderLink, error) {
	var (
		l  model.PatientProviderLink
		lf linkFields
	)
	if err := row.Scan(lf.dest(&l)...); err != nil {
		return nil, fmt.Errorf("scan provider link: %w", err)
	}
	lf.apply(&l)
	return &l, nil
}
