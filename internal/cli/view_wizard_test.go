package cli

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/summitroutes/trekplan/internal/booking"
	"github.com/summitroutes/trekplan/internal/domain"
	"github.com/summitroutes/trekplan/internal/planner"
	"github.com/summitroutes/trekplan/internal/teatest"
	"github.com/summitroutes/trekplan/internal/testutil"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// initController runs Initialize the way the plan command does.
func initController(t *testing.T, env *testEnv) (*planner.Controller, planner.ResumePhase) {
	t.Helper()
	ctrl := env.app.newController()
	phase, err := ctrl.Initialize(context.Background())
	require.NoError(t, err)
	return ctrl, phase
}

// seedController writes every field of d and advances to step.
func seedController(t *testing.T, ctrl *planner.Controller, d domain.TripDraft, step int) {
	t.Helper()
	changes := []domain.Change{
		domain.FieldDestination.To(d.Destination),
		domain.FieldCustomDestination.To(d.CustomDestination),
		domain.FieldGroupSize.To(d.GroupSize),
		domain.FieldGroupType.To(d.GroupType),
		domain.FieldAgeRange.To(d.AgeRange),
		domain.FieldExperienceLevel.To(d.ExperienceLevel),
		domain.FieldFitnessLevel.To(d.FitnessLevel),
		domain.FieldAccommodation.To(d.Accommodation),
		domain.FieldMealPreferences.To(d.MealPreferences),
		domain.FieldDietaryRestrictions.To(d.DietaryRestrictions),
		domain.FieldGuideRequired.To(d.GuideRequired),
		domain.FieldPorterRequired.To(d.PorterRequired),
		domain.FieldTransportation.To(d.Transportation),
		domain.FieldInsuranceRequired.To(d.InsuranceRequired),
		domain.FieldEquipmentRental.To(d.EquipmentRental),
		domain.FieldBudgetRange.To(d.BudgetRange),
		domain.FieldBudgetAmount.To(d.BudgetAmount),
		domain.FieldStartDate.To(d.StartDate),
		domain.FieldDuration.To(d.Duration),
		domain.FieldSpecialRequests.To(d.SpecialRequests),
		domain.FieldContactInfo.To(d.ContactInfo),
		domain.FieldTermsAgreed.To(d.TermsAgreed),
	}
	for _, c := range changes {
		require.NoError(t, ctrl.SetField(c))
	}
	for ctrl.Step() < step {
		require.NoError(t, ctrl.Advance())
	}
}

func startWizard(t *testing.T, env *testEnv, ctrl *planner.Controller, phase planner.ResumePhase) *teatest.Driver {
	t.Helper()
	m := newWizardModel(context.Background(), ctrl, phase, env.app.Now)
	d := teatest.New(t, m, teatest.WithSize(100, 60), teatest.WithCmdTimeout(50*time.Millisecond))
	d.DrainInit()
	return d
}

func wizard(d *teatest.Driver) *wizardModel {
	return d.Model.(*wizardModel)
}

func plainView(d *teatest.Driver) string {
	return ansiEscape.ReplaceAllString(d.View(), "")
}

func storedDraft(t *testing.T, env *testEnv) *domain.StoredDraft {
	t.Helper()
	rec, err := env.store.Load(context.Background())
	require.NoError(t, err)
	return rec
}

func TestWizard_FreshStartShowsFirstStep(t *testing.T) {
	env := testApp(t)
	ctrl, phase := initController(t, env)
	require.Equal(t, planner.PhaseNoDraft, phase)

	d := startWizard(t, env, ctrl, phase)

	assert.Equal(t, modeStep, wizard(d).mode)
	view := plainView(d)
	assert.Contains(t, view, "Step 1 of 6")
	assert.Contains(t, view, "Trek details")
}

func TestWizard_StepCompletionAdvances(t *testing.T) {
	env := testApp(t)
	ctrl, phase := initController(t, env)
	seedController(t, ctrl, testutil.NewTestDraft(), domain.StepGroupExperience)
	d := startWizard(t, env, ctrl, phase)

	d.Send(stepCompleteMsg{})

	assert.Equal(t, domain.StepAccommodationMeals, wizard(d).step)
	assert.Empty(t, wizard(d).notice)
	assert.Contains(t, plainView(d), "Step 3 of 6")
}

func TestWizard_InvalidStepShowsProblems(t *testing.T) {
	env := testApp(t)
	ctrl, phase := initController(t, env)
	require.NoError(t, ctrl.SetField(domain.FieldDestination.To("langtang_valley")))
	require.NoError(t, ctrl.Advance())
	require.NoError(t, ctrl.Advance())
	d := startWizard(t, env, ctrl, phase)

	d.Send(stepCompleteMsg{})

	assert.Equal(t, domain.StepAccommodationMeals, wizard(d).step)
	view := plainView(d)
	assert.Contains(t, view, "Please fix the following")
	assert.Contains(t, view, "mealPreferences: choose at least one meal preference")
}

func TestWizard_EscRetreatsKeepingStep(t *testing.T) {
	env := testApp(t)
	ctrl, phase := initController(t, env)
	seedController(t, ctrl, testutil.NewTestDraft(), domain.StepBudgetDates)
	d := startWizard(t, env, ctrl, phase)

	d.PressEsc()

	assert.Equal(t, domain.StepServicesTransport, wizard(d).step)
	assert.False(t, d.Quitting)
	assert.Equal(t, testutil.NewTestDraft(), ctrl.Draft())
}

func TestWizard_EscOnFirstStepSavesAndQuits(t *testing.T) {
	env := testApp(t)
	ctrl, phase := initController(t, env)
	seedController(t, ctrl, testutil.NewTestDraft(), domain.StepTrekDetails)
	d := startWizard(t, env, ctrl, phase)

	d.PressEsc()

	assert.True(t, d.Quitting)
	rec := storedDraft(t, env)
	require.NotNil(t, rec)
	assert.Equal(t, domain.StepTrekDetails, rec.Step)
	assert.False(t, rec.IsSubmissionPending)
	assert.Contains(t, plainView(d), "Progress saved")
}

func TestWizard_CtrlCSavesProgress(t *testing.T) {
	env := testApp(t)
	ctrl, phase := initController(t, env)
	seedController(t, ctrl, testutil.NewTestDraft(), domain.StepServicesTransport)
	d := startWizard(t, env, ctrl, phase)

	d.PressCtrlC()

	assert.True(t, d.Quitting)
	rec := storedDraft(t, env)
	require.NotNil(t, rec)
	assert.Equal(t, domain.StepServicesTransport, rec.Step)
	assert.Equal(t, testNow, rec.LastSaved)
	assert.Equal(t, "everest_base_camp", rec.Destination)
}

func TestWizard_SubmitSignedIn(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "opaque-token")
	env.client.submitResp = &booking.SubmitResponse{Success: true, Message: "Namaste! We will be in touch."}
	ctrl, phase := initController(t, env)
	seedController(t, ctrl, testutil.NewTestDraft(), domain.StepReviewSubmit)
	d := startWizard(t, env, ctrl, phase)

	d.Send(stepCompleteMsg{})

	m := wizard(d)
	require.NotNil(t, m.outcome)
	assert.Equal(t, modeDone, m.mode)
	assert.Equal(t, planner.OutcomeSubmitted, m.outcome.Status)
	assert.Equal(t, []string{"opaque-token"}, env.client.tokens)
	assert.Contains(t, plainView(d), "Namaste! We will be in touch.")
	assert.Nil(t, storedDraft(t, env), "store is cleared after submission")

	receipts, err := env.app.History.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, receipts, 1)

	// The confirmation stays up until the redirect fires.
	assert.False(t, d.Quitting)
	d.Send(redirectMsg{})
	assert.True(t, d.Quitting)
}

func TestWizard_SubmitSignedOutSavesPending(t *testing.T) {
	env := testApp(t)
	ctrl, phase := initController(t, env)
	seedController(t, ctrl, testutil.NewTestDraft(), domain.StepReviewSubmit)
	d := startWizard(t, env, ctrl, phase)

	d.Send(stepCompleteMsg{})

	m := wizard(d)
	require.NotNil(t, m.outcome)
	assert.Equal(t, planner.OutcomeLoginRequired, m.outcome.Status)
	assert.True(t, d.Quitting)
	assert.Empty(t, env.client.submitted)
	assert.Contains(t, plainView(d), planner.LoginRequiredMessage)

	rec := storedDraft(t, env)
	require.NotNil(t, rec)
	assert.True(t, rec.IsSubmissionPending)
	assert.Equal(t, domain.LastStep, rec.Step)
}

func TestWizard_SubmitFailureStaysOnReview(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "opaque-token")
	env.client.submitErr = &booking.APIError{Status: 422, Message: "Guides are fully booked for those dates"}
	ctrl, phase := initController(t, env)
	seedController(t, ctrl, testutil.NewTestDraft(), domain.StepReviewSubmit)
	d := startWizard(t, env, ctrl, phase)

	d.Send(stepCompleteMsg{})

	m := wizard(d)
	assert.Equal(t, modeStep, m.mode)
	assert.Equal(t, domain.StepReviewSubmit, m.step)
	assert.False(t, d.Quitting)
	assert.Contains(t, plainView(d), "Guides are fully booked for those dates")
	assert.False(t, ctrl.Loading())
}

func TestWizard_ResumeOfferShowsSavedDraft(t *testing.T) {
	env := testApp(t)
	env.saveDraft(t, testutil.NewTestDraft(), domain.StepServicesTransport, false)
	ctrl, phase := initController(t, env)
	require.Equal(t, planner.PhaseOfferingResume, phase)

	d := startWizard(t, env, ctrl, phase)

	assert.Equal(t, modeResume, wizard(d).mode)
	view := plainView(d)
	assert.Contains(t, view, "SAVED DRAFT")
	assert.Contains(t, view, "Everest Base Camp Trek")
	assert.Contains(t, view, "Continue where I left off")
}

func TestWizard_ResumeContinue(t *testing.T) {
	env := testApp(t)
	env.saveDraft(t, testutil.NewTestDraft(), domain.StepServicesTransport, false)
	ctrl, phase := initController(t, env)
	d := startWizard(t, env, ctrl, phase)

	d.Send(resumeChosenMsg{choice: planner.ChoiceContinue})

	m := wizard(d)
	assert.Equal(t, modeStep, m.mode)
	assert.Equal(t, domain.StepServicesTransport, m.step)
	assert.Equal(t, "everest_base_camp", ctrl.Draft().Destination)
}

func TestWizard_ResumeDiscard(t *testing.T) {
	env := testApp(t)
	env.saveDraft(t, testutil.NewTestDraft(), domain.StepServicesTransport, false)
	ctrl, phase := initController(t, env)
	d := startWizard(t, env, ctrl, phase)

	d.Send(resumeChosenMsg{choice: planner.ChoiceDiscard})

	assert.Equal(t, domain.StepTrekDetails, wizard(d).step)
	assert.Contains(t, plainView(d), "Saved draft discarded")
	assert.Nil(t, storedDraft(t, env))
}

func TestWizard_PendingSubmitNow(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "opaque-token")
	env.saveDraft(t, testutil.NewTestDraft(), domain.LastStep, true)
	ctrl, phase := initController(t, env)
	require.Equal(t, planner.PhaseOfferingPendingSubmit, phase)
	d := startWizard(t, env, ctrl, phase)
	assert.Contains(t, plainView(d), "Submit it now")

	d.Send(resumeChosenMsg{choice: planner.ChoiceSubmitNow})

	m := wizard(d)
	require.NotNil(t, m.outcome)
	assert.Equal(t, planner.OutcomeSubmitted, m.outcome.Status)
	require.Len(t, env.client.submitted, 1)
	assert.Equal(t, "everest_base_camp", env.client.submitted[0].Destination)
}

func TestWizard_CtrlCDuringOfferLeavesStorage(t *testing.T) {
	env := testApp(t)
	env.saveDraft(t, testutil.NewTestDraft(), domain.StepGroupExperience, false)
	before := storedDraft(t, env)
	ctrl, phase := initController(t, env)
	d := startWizard(t, env, ctrl, phase)

	d.PressCtrlC()

	assert.True(t, d.Quitting)
	assert.Equal(t, before, storedDraft(t, env))
}

func TestDescribeError(t *testing.T) {
	verr := &domain.ValidationError{Step: 0, Problems: []domain.FieldProblem{
		{Field: domain.FieldNameDestination, Message: "select a destination"},
	}}
	assert.Contains(t, describeError(verr), "destination: select a destination")

	serr := &planner.SubmissionError{Message: planner.GenericSubmitFailure, Err: booking.ErrUnavailable}
	out := describeError(serr)
	assert.Contains(t, out, planner.GenericSubmitFailure)
	assert.NotContains(t, out, "booking api unavailable")

	assert.Contains(t, describeError(planner.ErrBusy), "submission in progress")
}
