package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	StepTrekDetails = iota
	StepGroupExperience
	StepAccommodationMeals
	StepServicesTransport
	StepBudgetDates
	StepReviewSubmit

	StepCount = StepReviewSubmit + 1
	LastStep  = StepReviewSubmit
)

// FieldProblem is one failed check on one field.
type FieldProblem struct {
	Field   FieldName
	Message string
}

// ValidationError lists every field that blocked a step transition or a
// submission. Step is -1 when the whole draft was checked.
type ValidationError struct {
	Step     int
	Problems []FieldProblem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("%s (%s)", p.Field, p.Message))
	}
	return "fix required fields: " + strings.Join(parts, ", ")
}

// Fields returns the failing field names in check order.
func (e *ValidationError) Fields() []FieldName {
	out := make([]FieldName, 0, len(e.Problems))
	for _, p := range e.Problems {
		out = append(out, p.Field)
	}
	return out
}

// StepRequirements returns the fields the given step is responsible for.
// customDestination is only listed when the draft selects the custom sentinel.
func StepRequirements(d TripDraft, step int) []FieldName {
	switch step {
	case StepTrekDetails:
		if d.Destination == CustomDestinationID {
			return []FieldName{FieldNameDestination, FieldNameCustomDestination}
		}
		return []FieldName{FieldNameDestination}
	case StepGroupExperience:
		return []FieldName{FieldNameGroupSize, FieldNameGroupType, FieldNameAgeRange, FieldNameExperienceLevel, FieldNameFitnessLevel}
	case StepAccommodationMeals:
		return []FieldName{FieldNameAccommodation, FieldNameMealPreferences}
	case StepServicesTransport:
		return []FieldName{FieldNameTransportation}
	case StepBudgetDates:
		return []FieldName{FieldNameBudgetRange, FieldNameStartDate, FieldNameDuration}
	case StepReviewSubmit:
		return []FieldName{FieldNameContactName, FieldNameContactEmail, FieldNameContactPhone, FieldNameContactCountry, FieldNameTermsAgreed}
	default:
		return nil
	}
}

// ValidateStep checks only the fields owned by step.
func ValidateStep(d TripDraft, step int) error {
	if step < 0 || step > LastStep {
		return fmt.Errorf("step %d out of range", step)
	}
	var problems []FieldProblem
	for _, f := range StepRequirements(d, step) {
		if msg := checkField(d, f); msg != "" {
			problems = append(problems, FieldProblem{Field: f, Message: msg})
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Step: step, Problems: problems}
	}
	return nil
}

// ValidateAll checks every step, including terms agreement. It reports all
// problems at once.
func ValidateAll(d TripDraft) error {
	var problems []FieldProblem
	for step := 0; step <= LastStep; step++ {
		for _, f := range StepRequirements(d, step) {
			if msg := checkField(d, f); msg != "" {
				problems = append(problems, FieldProblem{Field: f, Message: msg})
			}
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Step: -1, Problems: problems}
	}
	return nil
}

// checkField returns a human-readable problem, or "" when the field is valid.
func checkField(d TripDraft, f FieldName) string {
	switch f {
	case FieldNameDestination:
		if strings.TrimSpace(d.Destination) == "" {
			return "select a destination"
		}
	case FieldNameCustomDestination:
		if d.Destination == CustomDestinationID && strings.TrimSpace(d.CustomDestination) == "" {
			return "describe your custom destination"
		}
	case FieldNameGroupSize:
		if d.GroupSize < MinGroupSize || d.GroupSize > MaxGroupSize {
			return fmt.Sprintf("must be between %d and %d", MinGroupSize, MaxGroupSize)
		}
	case FieldNameGroupType:
		if !d.GroupType.Valid() {
			return "select a group type"
		}
	case FieldNameAgeRange:
		r := d.AgeRange
		if r.Min < MinAge || r.Max > MaxAge || r.Min > r.Max {
			return fmt.Sprintf("ages must be between %d and %d with min <= max", MinAge, MaxAge)
		}
	case FieldNameExperienceLevel:
		if !d.ExperienceLevel.Valid() {
			return "select an experience level"
		}
	case FieldNameFitnessLevel:
		if !d.FitnessLevel.Valid() {
			return "select a fitness level"
		}
	case FieldNameAccommodation:
		if !d.Accommodation.Valid() {
			return "select an accommodation type"
		}
	case FieldNameMealPreferences:
		if len(d.MealPreferences) == 0 {
			return "choose at least one meal preference"
		}
		for _, m := range d.MealPreferences {
			if !m.Valid() {
				return fmt.Sprintf("unknown meal preference %q", m)
			}
		}
	case FieldNameTransportation:
		if len(d.Transportation) == 0 {
			return "choose at least one transport option"
		}
		for _, t := range d.Transportation {
			if !t.Valid() {
				return fmt.Sprintf("unknown transport option %q", t)
			}
		}
	case FieldNameBudgetRange:
		band, ok := BandFor(d.BudgetRange)
		if !ok {
			return "select a budget range"
		}
		if !band.Contains(d.BudgetAmount) {
			return fmt.Sprintf("amount must be between $%d and $%d", band.Min, band.Max)
		}
	case FieldNameStartDate:
		if d.StartDate == nil {
			return "pick a start date"
		}
	case FieldNameDuration:
		if d.Duration < MinDuration || d.Duration > MaxDuration {
			return fmt.Sprintf("must be between %d and %d days", MinDuration, MaxDuration)
		}
	case FieldNameContactName:
		if strings.TrimSpace(d.ContactInfo.Name) == "" {
			return "required"
		}
	case FieldNameContactEmail:
		if strings.TrimSpace(d.ContactInfo.Email) == "" {
			return "required"
		}
		if _, err := mail.ParseAddress(d.ContactInfo.Email); err != nil {
			return "enter a valid email address"
		}
	case FieldNameContactPhone:
		if strings.TrimSpace(d.ContactInfo.Phone) == "" {
			return "required"
		}
	case FieldNameContactCountry:
		if strings.TrimSpace(d.ContactInfo.Country) == "" {
			return "required"
		}
	case FieldNameTermsAgreed:
		if !d.TermsAgreed {
			return "you must agree to the terms and conditions"
		}
	}
	return ""
}
