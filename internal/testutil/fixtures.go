package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/summitroutes/trekplan/internal/domain"
)

// TestStartDate is the fixed trek start used by fixtures.
var TestStartDate = time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

// Draft options
type DraftOption func(*domain.TripDraft)

func WithDestination(id string) DraftOption {
	return func(d *domain.TripDraft) {
		domain.Apply(d, domain.FieldDestination.To(id))
	}
}

func WithCustomDestination(name string) DraftOption {
	return func(d *domain.TripDraft) {
		domain.Apply(d, domain.FieldDestination.To(domain.CustomDestinationID))
		domain.Apply(d, domain.FieldCustomDestination.To(name))
	}
}

func WithDates(start time.Time, days int) DraftOption {
	return func(d *domain.TripDraft) {
		domain.Apply(d, domain.FieldStartDate.To(&start))
		domain.Apply(d, domain.FieldDuration.To(days))
	}
}

func WithBudget(r domain.BudgetRange) DraftOption {
	return func(d *domain.TripDraft) {
		domain.Apply(d, domain.FieldBudgetRange.To(r))
	}
}

func WithTerms(agreed bool) DraftOption {
	return func(d *domain.TripDraft) {
		domain.Apply(d, domain.FieldTermsAgreed.To(agreed))
	}
}

// NewTestDraft returns a draft that passes every step's validation unless
// an option breaks it.
func NewTestDraft(opts ...DraftOption) domain.TripDraft {
	d := domain.DefaultTripDraft()
	domain.Apply(&d, domain.FieldDestination.To("everest_base_camp"))
	domain.Apply(&d, domain.FieldGroupSize.To(4))
	domain.Apply(&d, domain.FieldGroupType.To(domain.GroupFriends))
	domain.Apply(&d, domain.FieldMealPreferences.To([]domain.MealPreference{domain.MealVegetarian, domain.MealGlutenFree}))
	domain.Apply(&d, domain.FieldTransportation.To([]domain.Transport{domain.TransportFlight}))
	domain.Apply(&d, domain.FieldStartDate.To(&TestStartDate))
	domain.Apply(&d, domain.FieldDuration.To(14))
	domain.Apply(&d, domain.FieldBudgetRange.To(domain.BudgetComfort))
	domain.Apply(&d, domain.FieldContactInfo.To(domain.ContactInfo{
		Name:    "Pemba Sherpa",
		Email:   "pemba@example.com",
		Phone:   "+977 9812345678",
		Country: "Nepal",
		EmergencyContact: domain.EmergencyContact{
			Name:         "Dawa Sherpa",
			Relationship: "sibling",
			Phone:        "+977 9800000001",
		},
	}))
	domain.Apply(&d, domain.FieldTermsAgreed.To(true))
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewTestReceipt returns a submission receipt for d.
func NewTestReceipt(d domain.TripDraft, submittedAt time.Time) *domain.SubmissionReceipt {
	return &domain.SubmissionReceipt{
		ID:           uuid.New().String(),
		Destination:  d.Destination,
		StartDate:    d.StartDate,
		Duration:     d.Duration,
		GroupSize:    d.GroupSize,
		BudgetAmount: d.BudgetAmount,
		Message:      "Custom trip request submitted",
		SubmittedAt:  submittedAt,
	}
}
