package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthsync/healthsync-go/internal/model"
)

func strPtr(s string) *string { return &s }

func TestSideEffects_SummaryCarriesNameAndDetails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id, token := env.register(t, "a@x.com")

	_, err := env.sideEffects.ListAdverseSideEffects(ctx, id, token)
	assert.ErrorIs(t, err, ErrNoSideEffects)

	nausea, err := env.sideEffects.AddAdverseSideEffect(ctx, id, model.AdverseSideEffectRequest{Symptom: "Nausea"}, token)
	require.NoError(t, err)
	rash, err := env.sideEffects.AddAdverseSideEffect(ctx, id, model.AdverseSideEffectRequest{Symptom: "Rash"}, token)
	require.NoError(t, err)

	_, err = env.sideEffects.ListSideEffectDetails(ctx, nausea.ID, token)
	assert.ErrorIs(t, err, ErrNoSideEffectDetail)

	score := 4
	detail, err := env.sideEffects.AddSideEffectDetail(ctx, model.AdverseSideEffectDetailRequest{
		AdverseSideEffectID: nausea.ID,
		Observation:         strPtr("after breakfast"),
		IntensityScore:      &score,
	}, token)
	require.NoError(t, err)
	assert.NotZero(t, detail.ID)
	assert.True(t, detail.Active)

	summaries, err := env.sideEffects.ListAdverseSideEffects(ctx, id, token)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, nausea.ID, summaries[0].ID)
	assert.Equal(t, "A B", summaries[0].PatientName)
	require.Len(t, summaries[0].Details, 1)
	assert.Equal(t, detail.ID, summaries[0].Details[0].ID)

	assert.Equal(t, rash.ID, summaries[1].ID)
	assert.NotNil(t, summaries[1].Details)
	assert.Empty(t, summaries[1].Details)

	details, err := env.sideEffects.ListSideEffectDetails(ctx, nausea.ID, token)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, 4, *details[0].IntensityScore)
}

func TestSideEffectDetails_AuthorizedThroughParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aID, aToken := env.register(t, "a@x.com")
	_, bToken := env.register(t, "b@x.com")

	effect, err := env.sideEffects.AddAdverseSideEffect(ctx, aID, model.AdverseSideEffectRequest{Symptom: "Nausea"}, aToken)
	require.NoError(t, err)

	_, err = env.sideEffects.AddSideEffectDetail(ctx, model.AdverseSideEffectDetailRequest{
		AdverseSideEffectID: effect.ID,
	}, bToken)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.sideEffects.ListSideEffectDetails(ctx, effect.ID, bToken)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.sideEffects.AddSideEffectDetail(ctx, model.AdverseSideEffectDetailRequest{
		AdverseSideEffectID: 9999,
	}, aToken)
	assert.ErrorIs(t, err, ErrSideEffectNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}
