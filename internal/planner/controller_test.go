package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/summitroutes/trekplan/internal/booking"
	"github.com/summitroutes/trekplan/internal/domain"
	"github.com/summitroutes/trekplan/internal/repository"
	"github.com/summitroutes/trekplan/internal/service"
	"github.com/summitroutes/trekplan/internal/testutil"
)

var testNow = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

type fakeSubmitter struct {
	calls     int
	lastToken string
	lastDraft domain.TripDraft
	resp      *booking.SubmitResponse
	err       error
	during    func()
}

func (f *fakeSubmitter) SubmitCustomTrip(_ context.Context, token string, d domain.TripDraft) (*booking.SubmitResponse, error) {
	f.calls++
	f.lastToken = token
	f.lastDraft = d
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &booking.SubmitResponse{Success: true, Message: "Request received"}, nil
}

type fakeAuth struct {
	token       string
	err         error
	logoutCalls int
}

func (f *fakeAuth) Token(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.token == "" {
		return "", service.ErrNotSignedIn
	}
	return f.token, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	f.token = ""
	return nil
}

type fakeHistory struct {
	labels []string
}

func (f *fakeHistory) Record(_ context.Context, d domain.TripDraft, label, message string) (*domain.SubmissionReceipt, error) {
	f.labels = append(f.labels, label)
	rec := testutil.NewTestReceipt(d, testNow)
	rec.Destination = label
	rec.Message = message
	return rec, nil
}

type staticCatalog []domain.Destination

func (s staticCatalog) Destinations(context.Context) []domain.Destination { return s }

type failingStore struct{ *repository.SQLiteDraftStore }

func (failingStore) Save(context.Context, *domain.StoredDraft) error { return errors.New("disk full") }

type harness struct {
	ctrl    *Controller
	store   *repository.SQLiteDraftStore
	submit  *fakeSubmitter
	auth    *fakeAuth
	history *fakeHistory
}

func newHarness(t *testing.T, token string) *harness {
	t.Helper()
	h := &harness{
		store:   repository.NewSQLiteDraftStore(testutil.NewTestDB(t)),
		submit:  &fakeSubmitter{},
		auth:    &fakeAuth{token: token},
		history: &fakeHistory{},
	}
	h.ctrl = New(Deps{
		Store:     h.store,
		Submitter: h.submit,
		Auth:      h.auth,
		Catalog:   staticCatalog(domain.FallbackDestinations()),
		History:   h.history,
		Now:       func() time.Time { return testNow },
	})
	return h
}

func (h *harness) init(t *testing.T) ResumePhase {
	t.Helper()
	phase, err := h.ctrl.Initialize(context.Background())
	require.NoError(t, err)
	return phase
}

// fill writes every user-editable field of d through SetField.
func fill(t *testing.T, c *Controller, d domain.TripDraft) {
	t.Helper()
	changes := []domain.Change{
		domain.FieldDestination.To(d.Destination),
		domain.FieldCustomDestination.To(d.CustomDestination),
		domain.FieldStartDate.To(d.StartDate),
		domain.FieldDuration.To(d.Duration),
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
		domain.FieldSpecialRequests.To(d.SpecialRequests),
		domain.FieldContactInfo.To(d.ContactInfo),
		domain.FieldTermsAgreed.To(d.TermsAgreed),
	}
	for _, ch := range changes {
		require.NoError(t, c.SetField(ch))
	}
}

// toReview fills a complete draft and advances to the review step.
func (h *harness) toReview(t *testing.T) domain.TripDraft {
	t.Helper()
	d := testutil.NewTestDraft()
	fill(t, h.ctrl, d)
	for h.ctrl.Step() < domain.LastStep {
		require.NoError(t, h.ctrl.Advance())
	}
	return h.ctrl.Draft()
}

func (h *harness) stored(t *testing.T) *domain.StoredDraft {
	t.Helper()
	rec, err := h.store.Load(context.Background())
	require.NoError(t, err)
	return rec
}

func TestAdvance_StepScopedValidation(t *testing.T) {
	h := newHarness(t, "")
	h.init(t)

	err := h.ctrl.Advance()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []domain.FieldName{domain.FieldNameDestination}, verr.Fields())
	assert.Equal(t, 0, h.ctrl.Step())

	require.NoError(t, h.ctrl.SetField(domain.FieldDestination.To("everest_base_camp")))
	require.NoError(t, h.ctrl.Advance())
	assert.Equal(t, 1, h.ctrl.Step())
}

func TestAdvance_CustomDestinationRequired(t *testing.T) {
	h := newHarness(t, "")
	h.init(t)

	require.NoError(t, h.ctrl.SetField(domain.FieldDestination.To(domain.CustomDestinationID)))
	err := h.ctrl.Advance()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields(), domain.FieldNameCustomDestination)

	require.NoError(t, h.ctrl.SetField(domain.FieldCustomDestination.To("Makalu Traverse")))
	require.NoError(t, h.ctrl.Advance())
	assert.Equal(t, 1, h.ctrl.Step())
}

func TestAdvance_StopsAtReview(t *testing.T) {
	h := newHarness(t, "")
	h.init(t)
	h.toReview(t)

	require.NoError(t, h.ctrl.Advance())
	assert.Equal(t, domain.LastStep, h.ctrl.Step())
}

func TestRetreat(t *testing.T) {
	h := newHarness(t, "")
	h.init(t)

	assert.False(t, h.ctrl.Retreat(), "already on the first step")

	require.NoError(t, h.ctrl.SetField(domain.FieldDestination.To("poon_hill")))
	require.NoError(t, h.ctrl.Advance())
	// Retreat skips validation even if the current step is incomplete.
	require.NoError(t, h.ctrl.SetField(domain.FieldGroupSize.To(0)))
	assert.True(t, h.ctrl.Retreat())
	assert.Equal(t, 0, h.ctrl.Step())
}

func TestSetField_DerivesEndDateAndBudget(t *testing.T) {
	h := newHarness(t, "")
	h.init(t)
	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, h.ctrl.SetField(domain.FieldStartDate.To(&start)))
	require.NoError(t, h.ctrl.SetField(domain.FieldDuration.To(12)))
	d := h.ctrl.Draft()
	require.NotNil(t, d.EndDate)
	assert.Equal(t, time.Date(2026, 11, 12, 0, 0, 0, 0, time.UTC), *d.EndDate)

	require.NoError(t, h.ctrl.SetField(domain.FieldBudgetRange.To(domain.BudgetComfort)))
	assert.Equal(t, 2750, h.ctrl.Draft().BudgetAmount)
	require.NoError(t, h.ctrl.SetField(domain.FieldBudgetAmount.To(3000)))
	assert.Equal(t, 3000, h.ctrl.Draft().BudgetAmount)
	require.NoError(t, h.ctrl.SetField(domain.FieldBudgetRange.To(domain.BudgetComfort)))
	assert.Equal(t, 2750, h.ctrl.Draft().BudgetAmount)
}

func TestDraft_ReturnsCopy(t *testing.T) {
	h := newHarness(t, "")
	h.init(t)
	require.NoError(t, h.ctrl.SetField(domain.FieldMealPreferences.To([]domain.MealPreference{domain.MealVegan})))

	d := h.ctrl.Draft()
	d.MealPreferences[0] = domain.MealNonVegetarian

	assert.Equal(t, []domain.MealPreference{domain.MealVegan}, h.ctrl.Draft().MealPreferences)
}

func TestSubmit_NotOnReviewStep(t *testing.T) {
	h := newHarness(t, "tok")
	h.init(t)

	_, err := h.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotOnReviewStep)
	assert.Zero(t, h.submit.calls)
}

func TestSubmit_ValidationBlocksNetwork(t *testing.T) {
	h := newHarness(t, "tok")
	h.init(t)
	h.toReview(t)
	require.NoError(t, h.ctrl.SetField(domain.FieldTermsAgreed.To(false)))

	_, err := h.ctrl.Submit(context.Background())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []domain.FieldName{domain.FieldNameTermsAgreed}, verr.Fields())
	assert.Zero(t, h.submit.calls)
	assert.Nil(t, h.stored(t))
}

func TestSubmit_UnauthenticatedSavesPendingDraft(t *testing.T) {
	h := newHarness(t, "")
	h.init(t)
	want := h.toReview(t)

	out, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Zero(t, h.submit.calls, "must not reach the network")
	assert.Equal(t, OutcomeLoginRequired, out.Status)
	assert.Equal(t, LoginRedirect, out.Redirect)
	assert.False(t, out.SessionExpired)

	rec := h.stored(t)
	require.NotNil(t, rec)
	assert.True(t, rec.IsDraft)
	assert.True(t, rec.IsSubmissionPending)
	assert.True(t, rec.LastSaved.Equal(testNow))
	assert.Equal(t, want, rec.TripDraft)
	assert.False(t, h.ctrl.Submitted())
}

func TestSubmit_WithoutAuthServiceRequiresLogin(t *testing.T) {
	h := newHarness(t, "")
	h.ctrl = New(Deps{
		Store:     h.store,
		Submitter: h.submit,
		Now:       func() time.Time { return testNow },
	})
	h.init(t)
	h.toReview(t)

	out, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Zero(t, h.submit.calls)
	assert.Equal(t, OutcomeLoginRequired, out.Status)
	rec := h.stored(t)
	require.NotNil(t, rec)
	assert.True(t, rec.IsSubmissionPending)
}

func TestSubmit_SuccessClearsDraft(t *testing.T) {
	h := newHarness(t, "tok-1")
	h.init(t)
	want := h.toReview(t)
	require.NoError(t, h.ctrl.SaveProgress(context.Background()))
	require.NotNil(t, h.stored(t))

	out, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeSubmitted, out.Status)
	assert.Equal(t, ProfileRedirect, out.Redirect)
	assert.Equal(t, 3*time.Second, out.RedirectAfter)
	assert.Equal(t, "Request received", out.Message)
	require.NotNil(t, out.Receipt)

	assert.Equal(t, 1, h.submit.calls)
	assert.Equal(t, "tok-1", h.submit.lastToken)
	assert.Equal(t, want, h.submit.lastDraft)
	assert.Equal(t, []string{"Everest Base Camp Trek"}, h.history.labels)

	assert.Nil(t, h.stored(t))
	assert.True(t, h.ctrl.Submitted())
	assert.False(t, h.ctrl.Loading())
}

func TestSubmit_LoadingDuringCall(t *testing.T) {
	h := newHarness(t, "tok")
	h.init(t)
	h.toReview(t)

	var sawLoading bool
	h.submit.during = func() { sawLoading = h.ctrl.Loading() }

	_, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, sawLoading)
	assert.False(t, h.ctrl.Loading())
}

func TestSubmit_AfterSubmissionLocked(t *testing.T) {
	h := newHarness(t, "tok")
	h.init(t)
	h.toReview(t)
	_, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, h.ctrl.SetField(domain.FieldDuration.To(3)), ErrSubmitted)
	assert.ErrorIs(t, h.ctrl.Advance(), ErrSubmitted)
	assert.False(t, h.ctrl.Retreat())
	_, err = h.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitted)

	require.NoError(t, h.ctrl.SaveProgress(context.Background()))
	assert.Nil(t, h.stored(t), "nothing is saved after submission")
}

func TestSubmit_SessionExpiredFromServer(t *testing.T) {
	h := newHarness(t, "stale")
	h.init(t)
	want := h.toReview(t)
	h.submit.err = booking.ErrUnauthorized

	out, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeLoginRequired, out.Status)
	assert.True(t, out.SessionExpired)
	assert.Equal(t, SessionExpiredMessage, out.Message)
	assert.Equal(t, 1, h.auth.logoutCalls)

	rec := h.stored(t)
	require.NotNil(t, rec)
	assert.True(t, rec.IsSubmissionPending)
	assert.Equal(t, want, h.ctrl.Draft())
	assert.False(t, h.ctrl.Loading())
	assert.Equal(t, domain.LastStep, h.ctrl.Step())
}

func TestSubmit_SessionExpiredLocally(t *testing.T) {
	h := newHarness(t, "")
	h.auth.err = service.ErrSessionExpired
	h.init(t)
	h.toReview(t)

	out, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, out.SessionExpired)
	assert.Zero(t, h.submit.calls)
}

func TestSubmit_ServerErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &booking.APIError{Status: 400, Message: "Start date is fully booked"}, "Start date is fully booked"},
		{"no message", &booking.APIError{Status: 500}, GenericSubmitFailure},
		{"retries exhausted", errors.Join(booking.ErrRetryExhausted, &booking.APIError{Status: 502, Message: "Bad gateway"}), "Bad gateway"},
		{"unknown", errors.New("boom"), GenericSubmitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "tok")
			h.init(t)
			want := h.toReview(t)
			h.submit.err = tt.err

			_, err := h.ctrl.Submit(context.Background())

			var serr *SubmissionError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.want, serr.Message)
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, h.ctrl.Loading())
			assert.False(t, h.ctrl.Submitted())
			assert.Equal(t, domain.LastStep, h.ctrl.Step())
			assert.Equal(t, want, h.ctrl.Draft())
		})
	}
}

func TestSubmit_SuccessFalseResponse(t *testing.T) {
	h := newHarness(t, "tok")
	h.init(t)
	h.toReview(t)
	h.submit.resp = &booking.SubmitResponse{Success: false}

	_, err := h.ctrl.Submit(context.Background())
	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, GenericSubmitFailure, serr.Message)
}

func TestSubmit_SaveFailureBeforeLogin(t *testing.T) {
	h := newHarness(t, "")
	h.ctrl.deps.Store = failingStore{h.store}
	h.init(t)
	h.toReview(t)

	out, err := h.ctrl.Submit(context.Background())
	assert.Nil(t, out)
	assert.ErrorContains(t, err, "disk full")
}

func TestSaveProgress(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()
	h.init(t)

	require.NoError(t, h.ctrl.SaveProgress(ctx))
	assert.Nil(t, h.stored(t), "untouched draft is not saved")

	require.NoError(t, h.ctrl.SetField(domain.FieldDestination.To("langtang_valley")))
	require.NoError(t, h.ctrl.Advance())
	require.NoError(t, h.ctrl.SaveProgress(ctx))

	rec := h.stored(t)
	require.NotNil(t, rec)
	assert.True(t, rec.IsDraft)
	assert.False(t, rec.IsSubmissionPending)
	assert.Equal(t, 1, rec.Step)
	assert.Equal(t, "langtang_valley", rec.Destination)
}

func TestSaveProgress_KeepsPendingAfterLoginRedirect(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()
	h.init(t)
	h.toReview(t)

	_, err := h.ctrl.Submit(ctx)
	require.NoError(t, err)
	require.NoError(t, h.ctrl.SaveProgress(ctx))
	assert.True(t, h.stored(t).IsSubmissionPending)

	require.NoError(t, h.ctrl.SetField(domain.FieldSpecialRequests.To("window seat")))
	require.NoError(t, h.ctrl.SaveProgress(ctx))
	assert.False(t, h.stored(t).IsSubmissionPending, "editing again clears the pending flag")
}

func TestInitialize_LoadsCatalog(t *testing.T) {
	h := newHarness(t, "")
	h.ctrl.deps.Catalog = staticCatalog{{ID: "ebc", Label: "EBC"}, domain.CustomDestination()}

	h.init(t)
	assert.Len(t, h.ctrl.Destinations(), 2)
}

func TestInitialize_ResetsState(t *testing.T) {
	h := newHarness(t, "tok")
	h.init(t)
	h.toReview(t)
	_, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, PhaseNoDraft, h.init(t))
	assert.False(t, h.ctrl.Submitted())
	assert.Equal(t, 0, h.ctrl.Step())
	assert.Equal(t, domain.DefaultTripDraft(), h.ctrl.Draft())
}
