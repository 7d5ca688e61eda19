package domain

import (
	"slices"
	"time"
)

// FieldName identifies a TripDraft field by its wire name.
type FieldName string

const (
	FieldNameDestination         FieldName = "destination"
	FieldNameCustomDestination   FieldName = "customDestination"
	FieldNameStartDate           FieldName = "startDate"
	FieldNameDuration            FieldName = "duration"
	FieldNameEndDate             FieldName = "endDate"
	FieldNameGroupSize           FieldName = "groupSize"
	FieldNameGroupType           FieldName = "groupType"
	FieldNameAgeRange            FieldName = "ageRange"
	FieldNameExperienceLevel     FieldName = "experienceLevel"
	FieldNameFitnessLevel        FieldName = "fitnessLevel"
	FieldNameAccommodation       FieldName = "accommodation"
	FieldNameMealPreferences     FieldName = "mealPreferences"
	FieldNameDietaryRestrictions FieldName = "dietaryRestrictions"
	FieldNameGuideRequired       FieldName = "guideRequired"
	FieldNamePorterRequired      FieldName = "porterRequired"
	FieldNameTransportation      FieldName = "transportation"
	FieldNameInsuranceRequired   FieldName = "insuranceRequired"
	FieldNameEquipmentRental     FieldName = "equipmentRental"
	FieldNameBudgetRange         FieldName = "budgetRange"
	FieldNameBudgetAmount        FieldName = "budgetAmount"
	FieldNameSpecialRequests     FieldName = "specialRequests"
	FieldNameContactInfo         FieldName = "contactInfo"
	FieldNameTermsAgreed         FieldName = "termsAgreed"

	// Nested names used only when reporting validation problems.
	FieldNameContactName    FieldName = "contactInfo.name"
	FieldNameContactEmail   FieldName = "contactInfo.email"
	FieldNameContactPhone   FieldName = "contactInfo.phone"
	FieldNameContactCountry FieldName = "contactInfo.country"
)

// Change is a single typed field write produced by a FieldKey. Only this
// package can implement it, so every write goes through a known setter.
type Change interface {
	Field() FieldName
	apply(d *TripDraft)
}

// FieldKey binds a field name to a typed setter. It restores type safety to
// the one-callback onInputChange(field, value) pattern.
type FieldKey[T any] struct {
	name FieldName
	set  func(d *TripDraft, v T)
}

// Name returns the wire name of the field.
func (k FieldKey[T]) Name() FieldName { return k.name }

// To builds the change that writes v into the field.
func (k FieldKey[T]) To(v T) Change {
	return fieldChange[T]{key: k, value: v}
}

type fieldChange[T any] struct {
	key   FieldKey[T]
	value T
}

func (c fieldChange[T]) Field() FieldName   { return c.key.name }
func (c fieldChange[T]) apply(d *TripDraft) { c.key.set(d, c.value) }

// Apply writes change into d and recomputes derived fields.
func Apply(d *TripDraft, change Change) {
	change.apply(d)
	Derive(d, change.Field())
}

// EndDate has no key: it is derived and never written directly.
var (
	FieldDestination = FieldKey[string]{FieldNameDestination, func(d *TripDraft, v string) {
		d.Destination = v
		if v != CustomDestinationID {
			d.CustomDestination = ""
		}
	}}
	FieldCustomDestination = FieldKey[string]{FieldNameCustomDestination, func(d *TripDraft, v string) { d.CustomDestination = v }}
	FieldStartDate         = FieldKey[*time.Time]{FieldNameStartDate, func(d *TripDraft, v *time.Time) {
		if v == nil {
			d.StartDate = nil
			return
		}
		day := DateOnly(*v)
		d.StartDate = &day
	}}
	FieldDuration        = FieldKey[int]{FieldNameDuration, func(d *TripDraft, v int) { d.Duration = v }}
	FieldGroupSize       = FieldKey[int]{FieldNameGroupSize, func(d *TripDraft, v int) { d.GroupSize = v }}
	FieldGroupType       = FieldKey[GroupType]{FieldNameGroupType, func(d *TripDraft, v GroupType) { d.GroupType = v }}
	FieldAgeRange        = FieldKey[AgeRange]{FieldNameAgeRange, func(d *TripDraft, v AgeRange) { d.AgeRange = v }}
	FieldExperienceLevel = FieldKey[ExperienceLevel]{FieldNameExperienceLevel, func(d *TripDraft, v ExperienceLevel) { d.ExperienceLevel = v }}
	FieldFitnessLevel    = FieldKey[FitnessLevel]{FieldNameFitnessLevel, func(d *TripDraft, v FitnessLevel) { d.FitnessLevel = v }}
	FieldAccommodation   = FieldKey[Accommodation]{FieldNameAccommodation, func(d *TripDraft, v Accommodation) { d.Accommodation = v }}
	FieldMealPreferences = FieldKey[[]MealPreference]{FieldNameMealPreferences, func(d *TripDraft, v []MealPreference) {
		d.MealPreferences = dedupe(v)
	}}
	FieldDietaryRestrictions = FieldKey[string]{FieldNameDietaryRestrictions, func(d *TripDraft, v string) { d.DietaryRestrictions = v }}
	FieldGuideRequired       = FieldKey[bool]{FieldNameGuideRequired, func(d *TripDraft, v bool) { d.GuideRequired = v }}
	FieldPorterRequired      = FieldKey[bool]{FieldNamePorterRequired, func(d *TripDraft, v bool) { d.PorterRequired = v }}
	FieldTransportation      = FieldKey[[]Transport]{FieldNameTransportation, func(d *TripDraft, v []Transport) {
		d.Transportation = dedupe(v)
	}}
	FieldInsuranceRequired = FieldKey[bool]{FieldNameInsuranceRequired, func(d *TripDraft, v bool) { d.InsuranceRequired = v }}
	FieldEquipmentRental   = FieldKey[bool]{FieldNameEquipmentRental, func(d *TripDraft, v bool) { d.EquipmentRental = v }}
	FieldBudgetRange       = FieldKey[BudgetRange]{FieldNameBudgetRange, func(d *TripDraft, v BudgetRange) { d.BudgetRange = v }}
	FieldBudgetAmount      = FieldKey[int]{FieldNameBudgetAmount, func(d *TripDraft, v int) { d.BudgetAmount = v }}
	FieldSpecialRequests   = FieldKey[string]{FieldNameSpecialRequests, func(d *TripDraft, v string) { d.SpecialRequests = v }}
	FieldContactInfo       = FieldKey[ContactInfo]{FieldNameContactInfo, func(d *TripDraft, v ContactInfo) { d.ContactInfo = v }}
	FieldTermsAgreed       = FieldKey[bool]{FieldNameTermsAgreed, func(d *TripDraft, v bool) { d.TermsAgreed = v }}
)

// dedupe returns a copy of v with duplicates removed, preserving order.
func dedupe[T comparable](v []T) []T {
	out := make([]T, 0, len(v))
	for _, item := range v {
		if !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}
