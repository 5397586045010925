package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthsync/healthsync-go/internal/model"
)

func TestHealthConditionRepository(t *testing.T) {
	db := newTestDB(t)
	owner := seedPatient(t, db, "cond@example.com")
	other := seedPatient(t, db, "other@example.com")
	repo := NewHealthConditionRepository(db)
	ctx := context.Background()

	empty, err := repo.ListByPatient(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	now := time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)
	diagnosed := model.NewDate(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC))
	c := &model.HealthCondition{
		PatientID:     owner.ID,
		ConditionName: "Asthma",
		Code:          strPtr("J45"),
		DiagnosedOn:   &diagnosed,
		ConditionInfo: json.RawMessage(`{"severity":"mild"}`),
		CreatedOn:     now,
		UpdatedOn:     now,
		Active:        true,
	}
	require.NoError(t, repo.Create(ctx, c))
	assert.NotZero(t, c.ID)

	require.NoError(t, repo.Create(ctx, &model.HealthCondition{
		PatientID: other.ID, ConditionName: "Gout", CreatedOn: now, UpdatedOn: now, Active: true,
	}))

	got, err := repo.ListByPatient(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c.ID, got[0].ID)
	assert.Equal(t, "Asthma", got[0].ConditionName)
	require.NotNil(t, got[0].Code)
	assert.Equal(t, "J45", *got[0].Code)
	require.NotNil(t, got[0].DiagnosedOn)
	assert.Equal(t, "2020-01-15", got[0].DiagnosedOn.String())
	assert.JSONEq(t, `{"severity":"mild"}`, string(got[0].ConditionInfo))
	assert.Nil(t, got[0].Notes)
	assert.True(t, got[0].CreatedOn.Equal(now))
}

func TestMedicationRepository(t *testing.T) {
	db := newTestDB(t)
	owner := seedPatient(t, db, "med@example.com")
	repo := NewMedicationRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)
	dosage := 2.5
	m := &model.Medication{
		PatientID:       owner.ID,
		MedicationName:  "Albuterol",
		Dosage:          &dosage,
		DosageUnit:      strPtr("mg"),
		DosageFrequency: strPtr("daily"),
		CreatedOn:       now,
		UpdatedOn:       now,
		Active:          false,
	}
	require.NoError(t, repo.Create(ctx, m))
	assert.NotZero(t, m.ID)

	got, err := repo.ListByPatient(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Albuterol", got[0].MedicationName)
	require.NotNil(t, got[0].Dosage)
	assert.InDelta(t, 2.5, *got[0].Dosage, 1e-9)
	assert.Nil(t, got[0].DosageForm)
	assert.Nil(t, got[0].MedicationInfo)
	assert.False(t, got[0].Active)
}

func TestSideEffectRepository(t *testing.T) {
	db := newTestDB(t)
	owner := seedPatient(t, db, "se@example.com")
	repo := NewSideEffectRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)
	first := &model.AdverseSideEffect{PatientID: owner.ID, Symptom: "Nausea", CreatedOn: now, UpdatedOn: now, Active: true}
	second := &model.AdverseSideEffect{PatientID: owner.ID, Symptom: "Rash", Notes: strPtr("left arm"), CreatedOn: now, UpdatedOn: now, Active: true}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	fetched, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, fetched.PatientID)
	require.NotNil(t, fetched.Notes)
	assert.Equal(t, "left arm", *fetched.Notes)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrSideEffectNotFound)

	score := 7
	occurred := time.Date(2024, 3, 2, 6, 0, 0, 0, time.UTC)
	for _, d := range []*model.AdverseSideEffectDetail{
		{AdverseSideEffectID: first.ID, Observation: strPtr("vomiting"), IntensityScore: &score, TimeOfOccurrence: &occurred},
		{AdverseSideEffectID: first.ID, Observation: strPtr("dizziness")},
		{AdverseSideEffectID: second.ID, Observation: strPtr("itching")},
	} {
		d.CreatedOn, d.UpdatedOn, d.Active = now, now, true
		require.NoError(t, repo.CreateDetail(ctx, d))
		assert.NotZero(t, d.ID)
	}

	effects, err := repo.ListByPatient(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, effects, 2)
	assert.Equal(t, "Nausea", effects[0].Symptom)
	assert.Equal(t, "Rash", effects[1].Symptom)

	details, err := repo.ListDetails(ctx, first.ID, second.ID)
	require.NoError(t, err)
	require.Len(t, details[first.ID], 2)
	require.Len(t, details[second.ID], 1)
	assert.Equal(t, "vomiting", *details[first.ID][0].Observation)
	require.NotNil(t, details[first.ID][0].IntensityScore)
	assert.Equal(t, 7, *details[first.ID][0].IntensityScore)
	require.NotNil(t, details[first.ID][0].TimeOfOccurrence)
	assert.True(t, details[first.ID][0].TimeOfOccurrence.Equal(occurred))
	assert.Nil(t, details[first.ID][1].IntensityScore)

	none, err := repo.ListDetails(ctx)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSideEffectRepository_DetailRequiresParent(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()

	err := NewSideEffectRepository(db).CreateDetail(context.Background(), &model.AdverseSideEffectDetail{
		AdverseSideEffectID: 12345, CreatedOn: now, UpdatedOn: now, Active: true,
	})
	assert.Error(t, err)
}
