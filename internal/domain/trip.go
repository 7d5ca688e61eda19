package domain

import (
	"slices"
	"time"
)

// CustomDestinationID is the catalog sentinel that switches the wizard to a
// free-text destination.
const CustomDestinationID = "custom"

const (
	MinDuration  = 1
	MaxDuration  = 30
	MinGroupSize = 1
	MaxGroupSize = 20
	MinAge       = 1
	MaxAge       = 100
)

type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

type ContactInfo struct {
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Country          string           `json:"country"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
}

// TripDraft is the custom trip request the wizard edits. It is mutated only
// through Apply so the derived fields stay consistent.
type TripDraft struct {
	// Trek details
	Destination       string     `json:"destination"`
	CustomDestination string     `json:"customDestination"`
	StartDate         *time.Time `json:"startDate"`
	Duration          int        `json:"duration"`
	EndDate           *time.Time `json:"endDate"`

	// Group & experience
	GroupSize       int             `json:"groupSize"`
	GroupType       GroupType       `json:"groupType"`
	AgeRange        AgeRange        `json:"ageRange"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	FitnessLevel    FitnessLevel    `json:"fitnessLevel"`

	// Accommodation & meals
	Accommodation       Accommodation    `json:"accommodation"`
	MealPreferences     []MealPreference `json:"mealPreferences"`
	DietaryRestrictions string           `json:"dietaryRestrictions"`

	// Services & transport
	GuideRequired     bool        `json:"guideRequired"`
	PorterRequired    bool        `json:"porterRequired"`
	Transportation    []Transport `json:"transportation"`
	InsuranceRequired bool        `json:"insuranceRequired"`
	EquipmentRental   bool        `json:"equipmentRental"`

	// Budget
	BudgetRange  BudgetRange `json:"budgetRange"`
	BudgetAmount int         `json:"budgetAmount"`

	// Review
	SpecialRequests string      `json:"specialRequests"`
	ContactInfo     ContactInfo `json:"contactInfo"`
	TermsAgreed     bool        `json:"termsAgreed"`
}

// DefaultTripDraft returns the draft a fresh wizard starts from.
func DefaultTripDraft() TripDraft {
	d := TripDraft{
		Duration:          10,
		GroupSize:         1,
		GroupType:         GroupSolo,
		AgeRange:          AgeRange{Min: 18, Max: 60},
		ExperienceLevel:   ExperienceBeginner,
		FitnessLevel:      FitnessModerate,
		Accommodation:     AccommodationTeahouse,
		MealPreferences:   []MealPreference{},
		GuideRequired:     true,
		Transportation:    []Transport{},
		InsuranceRequired: true,
		BudgetRange:       BudgetStandard,
	}
	Derive(&d, FieldNameBudgetRange)
	return d
}

// Clone returns a deep copy so callers can hand drafts out without sharing
// slices or date pointers.
func (d TripDraft) Clone() TripDraft {
	out := d
	out.MealPreferences = slices.Clone(d.MealPreferences)
	out.Transportation = slices.Clone(d.Transportation)
	out.StartDate = cloneTime(d.StartDate)
	out.EndDate = cloneTime(d.EndDate)
	return out
}

// DestinationLabel resolves the human-readable destination against catalog,
// falling back to the raw id.
func (d TripDraft) DestinationLabel(catalog []Destination) string {
	if d.Destination == CustomDestinationID {
		return CoalesceStr(d.CustomDestination, "Custom destination")
	}
	for _, dest := range catalog {
		if dest.ID == d.Destination {
			return dest.Label
		}
	}
	return d.Destination
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
