package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/summitroutes/trekplan/internal/domain"
	"github.com/summitroutes/trekplan/internal/testutil"
)

func (h *harness) seed(t *testing.T, d domain.TripDraft, step int, pending bool) {
	t.Helper()
	rec := domain.NewStoredDraft(d, step, pending, testNow.Add(-time.Hour))
	require.NoError(t, h.store.Save(context.Background(), rec))
}

func TestInitialize_NoDraft(t *testing.T) {
	h := newHarness(t, "tok")
	assert.Equal(t, PhaseNoDraft, h.init(t))
	assert.Nil(t, h.ctrl.Phase().Choices())

	require.NoError(t, h.ctrl.SetField(domain.FieldDuration.To(7)))
	_, err := h.ctrl.Resolve(context.Background(), ChoiceContinue)
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestInitialize_PhaseSelection(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		pending  bool
		notDraft bool
		want     ResumePhase
	}{
		{"plain draft, signed out", "", false, false, PhaseOfferingResume},
		{"plain draft, signed in", "tok", false, false, PhaseOfferingResume},
		{"pending draft, signed out", "", true, false, PhaseOfferingResume},
		{"pending draft, signed in", "tok", true, false, PhaseOfferingPendingSubmit},
		{"record not marked as draft", "tok", false, true, PhaseNoDraft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.token)
			rec := domain.NewStoredDraft(testutil.NewTestDraft(), 3, tt.pending, testNow.Add(-time.Hour))
			rec.IsDraft = !tt.notDraft
			require.NoError(t, h.store.Save(context.Background(), rec))

			assert.Equal(t, tt.want, h.init(t))
			assert.Equal(t, domain.DefaultTripDraft(), h.ctrl.Draft(), "nothing is applied before Resolve")
			saved, ok := h.ctrl.SavedDraft()
			if tt.want == PhaseNoDraft {
				assert.False(t, ok)
				assert.Nil(t, h.ctrl.Phase().Choices())
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.pending, saved.IsSubmissionPending)
		})
	}
}

func TestOffer_BlocksEditingAndNavigation(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, testutil.NewTestDraft(), 2, false)
	h.init(t)

	assert.ErrorIs(t, h.ctrl.SetField(domain.FieldDuration.To(5)), ErrDecisionPending)
	assert.ErrorIs(t, h.ctrl.Advance(), ErrDecisionPending)
	assert.False(t, h.ctrl.Retreat())
	require.NoError(t, h.ctrl.SaveProgress(context.Background()))
	assert.Equal(t, 2, h.stored(t).Step, "open offer never overwrites the stored draft")
}

func TestResolve_Continue(t *testing.T) {
	h := newHarness(t, "")
	want := testutil.NewTestDraft(testutil.WithDestination("gokyo_lakes"))
	h.seed(t, want, 3, false)
	h.init(t)

	out, err := h.ctrl.Resolve(context.Background(), ChoiceContinue)
	require.NoError(t, err)
	assert.Nil(t, out)

	assert.Equal(t, PhaseResolved, h.ctrl.Phase())
	assert.Equal(t, 3, h.ctrl.Step())
	assert.Equal(t, want, h.ctrl.Draft())
	_, ok := h.ctrl.SavedDraft()
	assert.False(t, ok)
	require.NoError(t, h.ctrl.SetField(domain.FieldDuration.To(5)))
}

func TestResolve_ContinueClampsStoredValues(t *testing.T) {
	h := newHarness(t, "")
	d := testutil.NewTestDraft()
	d.BudgetAmount = 99999
	d.EndDate = nil
	h.seed(t, d, 42, false)
	h.init(t)

	_, err := h.ctrl.Resolve(context.Background(), ChoiceContinue)
	require.NoError(t, err)

	got := h.ctrl.Draft()
	assert.Equal(t, 3500, got.BudgetAmount, "clamped to the comfort band")
	require.NotNil(t, got.EndDate, "end date is recomputed")
	assert.Equal(t, domain.LastStep, h.ctrl.Step())
}

func TestResolve_Discard(t *testing.T) {
	h := newHarness(t, "tok")
	h.seed(t, testutil.NewTestDraft(), 4, true)
	require.Equal(t, PhaseOfferingPendingSubmit, h.init(t))

	_, err := h.ctrl.Resolve(context.Background(), ChoiceDiscard)
	require.NoError(t, err)

	assert.Nil(t, h.stored(t))
	assert.Equal(t, domain.DefaultTripDraft(), h.ctrl.Draft())
	assert.Equal(t, 0, h.ctrl.Step())
	assert.Equal(t, PhaseResolved, h.ctrl.Phase())
}

func TestResolve_ReviewFirst(t *testing.T) {
	h := newHarness(t, "tok")
	want := testutil.NewTestDraft()
	h.seed(t, want, 1, true)
	h.init(t)

	_, err := h.ctrl.Resolve(context.Background(), ChoiceReviewFirst)
	require.NoError(t, err)

	assert.Equal(t, domain.LastStep, h.ctrl.Step())
	assert.Equal(t, want, h.ctrl.Draft())
	assert.Zero(t, h.submit.calls)

	rec := h.stored(t)
	require.NotNil(t, rec, "draft is kept")
	assert.False(t, rec.IsSubmissionPending)
	assert.True(t, rec.LastSaved.Equal(testNow))
}

func TestResolve_SubmitNow(t *testing.T) {
	h := newHarness(t, "tok")
	want := testutil.NewTestDraft()
	h.seed(t, want, 5, true)
	h.init(t)

	out, err := h.ctrl.Resolve(context.Background(), ChoiceSubmitNow)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, OutcomeSubmitted, out.Status)
	assert.Equal(t, 1, h.submit.calls)
	assert.Equal(t, want, h.submit.lastDraft)
	assert.Nil(t, h.stored(t))
	assert.True(t, h.ctrl.Submitted())
}

func TestResolve_SubmitNowIncompleteDraft(t *testing.T) {
	h := newHarness(t, "tok")
	h.seed(t, testutil.NewTestDraft(testutil.WithTerms(false)), 5, true)
	h.init(t)

	_, err := h.ctrl.Resolve(context.Background(), ChoiceSubmitNow)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, h.submit.calls)
	assert.Equal(t, domain.LastStep, h.ctrl.Step())
	assert.Equal(t, PhaseResolved, h.ctrl.Phase())
	assert.NotNil(t, h.stored(t), "draft survives the failed attempt")
}

func TestResolve_InvalidChoiceForPhase(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, testutil.NewTestDraft(), 2, false)
	h.init(t)

	_, err := h.ctrl.Resolve(context.Background(), ChoiceSubmitNow)
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Equal(t, PhaseOfferingResume, h.ctrl.Phase())
}

func TestPendingDraftSurvivesLoginRoundTrip(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()
	h.init(t)
	want := h.toReview(t)

	out, err := h.ctrl.Submit(ctx)
	require.NoError(t, err)
	require.Equal(t, OutcomeLoginRequired, out.Status)

	// The user signs in and opens the planner again.
	h.auth.token = "fresh"
	require.Equal(t, PhaseOfferingPendingSubmit, h.init(t))

	out, err = h.ctrl.Resolve(ctx, ChoiceSubmitNow)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSubmitted, out.Status)
	assert.Equal(t, "fresh", h.submit.lastToken)
	assert.Equal(t, want, h.submit.lastDraft)
}
