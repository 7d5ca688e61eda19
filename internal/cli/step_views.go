package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/summitroutes/trekplan/internal/cli/formatter"
	"github.com/summitroutes/trekplan/internal/domain"
)

const (
	startDateLayout = "2006-01-02"

	// durationCustom is the select value that reveals the numeric input.
	durationCustom = -1

	reviewWidth = 76
)

var durationPresets = []int{7, 10, 14, 21}

// stepView renders one wizard step. Build binds a huh form to local copies
// of the step's fields; the draft itself is never touched. commit reports
// every owned field through onInputChange, one Change each.
type stepView interface {
	Title() string
	Build(d domain.TripDraft, catalog []domain.Destination, onInputChange func(domain.Change)) *stepForm
}

type stepForm struct {
	form   *huh.Form
	header string
	commit func()
}

// stepViews is indexed by domain step number.
var stepViews = [domain.StepCount]stepView{
	trekDetailsView{},
	groupExperienceView{},
	accommodationMealsView{},
	servicesTransportView{},
	budgetDatesView{},
	reviewSubmitView{},
}

func newStepForm(header string, commit func(), groups ...*huh.Group) *stepForm {
	form := huh.NewForm(groups...).
		WithTheme(trekplanHuhTheme()).
		WithShowHelp(false)
	return &stepForm{form: form, header: header, commit: commit}
}

// ── Step 1: trek details ─────────────────────────────────────────────────────

type trekDetailsView struct{}

func (trekDetailsView) Title() string { return "Trek details" }

func (trekDetailsView) Build(d domain.TripDraft, catalog []domain.Destination, onInputChange func(domain.Change)) *stepForm {
	destination := d.Destination
	custom := d.CustomDestination

	options := make([]huh.Option[string], 0, len(catalog))
	for _, dest := range catalog {
		label := dest.Label
		if dest.DurationHint != "" {
			label = fmt.Sprintf("%s (%s)", dest.Label, dest.DurationHint)
		}
		options = append(options, huh.NewOption(label, dest.ID))
	}

	commit := func() {
		for _, c := range destinationChanges(destination, custom) {
			onInputChange(c)
		}
	}

	return newStepForm("", commit,
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where would you like to trek?").
				Options(options...).
				Value(&destination),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Describe your destination").
				Placeholder("e.g. Dolpo region, Tsum Valley").
				Value(&custom),
		).WithHideFunc(func() bool { return destination != domain.CustomDestinationID }),
	)
}

// destinationChanges writes the picked destination and its free text. The
// hidden custom input keeps whatever was typed, so the text only survives
// while the custom sentinel is selected.
func destinationChanges(destination, custom string) []domain.Change {
	if destination != domain.CustomDestinationID {
		custom = ""
	}
	return []domain.Change{
		domain.FieldDestination.To(destination),
		domain.FieldCustomDestination.To(strings.TrimSpace(custom)),
	}
}

// ── Step 2: group & experience ───────────────────────────────────────────────

type groupExperienceView struct{}

func (groupExperienceView) Title() string { return "Group & experience" }

func (groupExperienceView) Build(d domain.TripDraft, _ []domain.Destination, onInputChange func(domain.Change)) *stepForm {
	groupSize := strconv.Itoa(d.GroupSize)
	groupType := d.GroupType
	ageMin := strconv.Itoa(d.AgeRange.Min)
	ageMax := strconv.Itoa(d.AgeRange.Max)
	experience := d.ExperienceLevel
	fitness := d.FitnessLevel

	commit := func() {
		onInputChange(domain.FieldGroupSize.To(atoiOrZero(groupSize)))
		onInputChange(domain.FieldGroupType.To(groupType))
		onInputChange(domain.FieldAgeRange.To(domain.AgeRange{Min: atoiOrZero(ageMin), Max: atoiOrZero(ageMax)}))
		onInputChange(domain.FieldExperienceLevel.To(experience))
		onInputChange(domain.FieldFitnessLevel.To(fitness))
	}

	return newStepForm("", commit,
		huh.NewGroup(
			huh.NewInput().
				Title("Group size").
				Description(fmt.Sprintf("%d to %d travellers", domain.MinGroupSize, domain.MaxGroupSize)).
				Validate(validateWholeNumber).
				Value(&groupSize),
			huh.NewSelect[domain.GroupType]().
				Title("Group type").
				Options(enumOptions(domain.GroupTypes)...).
				Value(&groupType),
		),
		huh.NewGroup(
			huh.NewInput().Title("Youngest traveller's age").Validate(validateWholeNumber).Value(&ageMin),
			huh.NewInput().Title("Oldest traveller's age").Validate(validateWholeNumber).Value(&ageMax),
		),
		huh.NewGroup(
			huh.NewSelect[domain.ExperienceLevel]().
				Title("Trekking experience").
				Options(enumOptions(domain.ExperienceLevels)...).
				Value(&experience),
			huh.NewSelect[domain.FitnessLevel]().
				Title("Fitness level").
				Options(enumOptions(domain.FitnessLevels)...).
				Value(&fitness),
		),
	)
}

// ── Step 3: accommodation & meals ────────────────────────────────────────────

type accommodationMealsView struct{}

func (accommodationMealsView) Title() string { return "Accommodation & meals" }

func (accommodationMealsView) Build(d domain.TripDraft, _ []domain.Destination, onInputChange func(domain.Change)) *stepForm {
	accommodation := d.Accommodation
	meals := append([]domain.MealPreference(nil), d.MealPreferences...)
	dietary := d.DietaryRestrictions

	commit := func() {
		onInputChange(domain.FieldAccommodation.To(accommodation))
		onInputChange(domain.FieldMealPreferences.To(meals))
		onInputChange(domain.FieldDietaryRestrictions.To(strings.TrimSpace(dietary)))
	}

	return newStepForm("", commit,
		huh.NewGroup(
			huh.NewSelect[domain.Accommodation]().
				Title("Accommodation").
				Options(enumOptions(domain.Accommodations)...).
				Value(&accommodation),
			huh.NewMultiSelect[domain.MealPreference]().
				Title("Meal preferences").
				Description("Choose at least one").
				Options(enumOptions(domain.MealPreferences)...).
				Value(&meals),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Dietary restrictions").
				Placeholder("Allergies, intolerances...").
				CharLimit(500).
				Value(&dietary),
		),
	)
}

// ── Step 4: services & transport ─────────────────────────────────────────────

type servicesTransportView struct{}

func (servicesTransportView) Title() string { return "Services & transport" }

func (servicesTransportView) Build(d domain.TripDraft, _ []domain.Destination, onInputChange func(domain.Change)) *stepForm {
	guide := d.GuideRequired
	porter := d.PorterRequired
	transport := append([]domain.Transport(nil), d.Transportation...)
	insurance := d.InsuranceRequired
	equipment := d.EquipmentRental

	commit := func() {
		onInputChange(domain.FieldGuideRequired.To(guide))
		onInputChange(domain.FieldPorterRequired.To(porter))
		onInputChange(domain.FieldTransportation.To(transport))
		onInputChange(domain.FieldInsuranceRequired.To(insurance))
		onInputChange(domain.FieldEquipmentRental.To(equipment))
	}

	return newStepForm("", commit,
		huh.NewGroup(
			huh.NewConfirm().Title("Licensed guide?").Affirmative("Yes").Negative("No").Value(&guide),
			huh.NewConfirm().Title("Porter service?").Affirmative("Yes").Negative("No").Value(&porter),
		),
		huh.NewGroup(
			huh.NewMultiSelect[domain.Transport]().
				Title("Transportation").
				Description("Choose at least one").
				Options(enumOptions(domain.Transports)...).
				Value(&transport),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Travel insurance assistance?").Affirmative("Yes").Negative("No").Value(&insurance),
			huh.NewConfirm().Title("Equipment rental?").Affirmative("Yes").Negative("No").Value(&equipment),
		),
	)
}

// ── Step 5: budget & dates ───────────────────────────────────────────────────

type budgetDatesView struct{}

func (budgetDatesView) Title() string { return "Budget & dates" }

func (budgetDatesView) Build(d domain.TripDraft, _ []domain.Destination, onInputChange func(domain.Change)) *stepForm {
	initialRange := d.BudgetRange
	initialAmount := strconv.Itoa(d.BudgetAmount)

	budgetRange := d.BudgetRange
	amount := initialAmount
	startDate := ""
	if d.StartDate != nil {
		startDate = d.StartDate.Format(startDateLayout)
	}
	durationChoice, customDuration := durationInputs(d.Duration)

	commit := func() {
		onInputChange(domain.FieldBudgetRange.To(budgetRange))
		onInputChange(domain.FieldBudgetAmount.To(budgetAmountFor(initialRange, initialAmount, budgetRange, amount)))
		onInputChange(domain.FieldStartDate.To(parseStartDate(startDate)))
		onInputChange(domain.FieldDuration.To(durationFrom(durationChoice, customDuration)))
	}

	rangeOptions := make([]huh.Option[domain.BudgetRange], 0, len(domain.BudgetRanges))
	for _, r := range domain.BudgetRanges {
		rangeOptions = append(rangeOptions, huh.NewOption(formatter.BudgetBand(r), r))
	}
	durationOptions := make([]huh.Option[int], 0, len(durationPresets)+1)
	for _, n := range durationPresets {
		durationOptions = append(durationOptions, huh.NewOption(fmt.Sprintf("%d days", n), n))
	}
	durationOptions = append(durationOptions, huh.NewOption("Custom", durationCustom))

	header := strings.Join([]string{
		formatter.Dim(formatter.TrekDates(d)),
		formatter.Dim(fmt.Sprintf("%s per person", formatter.Money(d.BudgetAmount))),
		formatter.BudgetBreakdown(d),
	}, "\n")

	return newStepForm(header, commit,
		huh.NewGroup(
			huh.NewSelect[domain.BudgetRange]().
				Title("Budget range (per person)").
				Options(rangeOptions...).
				Value(&budgetRange),
			huh.NewInput().
				Title("Budget amount (USD)").
				Description("Changing the range resets this to the middle of the new band").
				Validate(validateWholeNumber).
				Value(&amount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder(startDateLayout).
				Validate(validateStartDate).
				Value(&startDate),
			huh.NewSelect[int]().
				Title("Duration").
				Options(durationOptions...).
				Value(&durationChoice),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Number of days").
				Description(fmt.Sprintf("%d to %d", domain.MinDuration, domain.MaxDuration)).
				Value(&customDuration),
		).WithHideFunc(func() bool { return durationChoice != durationCustom }),
	)
}

// ── Step 6: review & submit ──────────────────────────────────────────────────

type reviewSubmitView struct{}

func (reviewSubmitView) Title() string { return "Review & submit" }

func (reviewSubmitView) Build(d domain.TripDraft, catalog []domain.Destination, onInputChange func(domain.Change)) *stepForm {
	special := d.SpecialRequests
	contact := d.ContactInfo
	terms := d.TermsAgreed

	commit := func() {
		onInputChange(domain.FieldSpecialRequests.To(strings.TrimSpace(special)))
		onInputChange(domain.FieldContactInfo.To(trimContact(contact)))
		onInputChange(domain.FieldTermsAgreed.To(terms))
	}

	header := formatter.RenderMarkdown(formatter.ReviewMarkdown(d, catalog), reviewWidth)

	return newStepForm(header, commit,
		huh.NewGroup(
			huh.NewText().
				Title("Special requests").
				Placeholder("Anything else we should plan for?").
				CharLimit(1000).
				Value(&special),
		),
		huh.NewGroup(
			huh.NewInput().Title("Full name").Value(&contact.Name),
			huh.NewInput().Title("Email").Value(&contact.Email),
			huh.NewInput().Title("Phone").Value(&contact.Phone),
			huh.NewInput().Title("Country").Value(&contact.Country),
		).Title("Contact information"),
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&contact.EmergencyContact.Name),
			huh.NewInput().Title("Relationship").Value(&contact.EmergencyContact.Relationship),
			huh.NewInput().Title("Phone").Value(&contact.EmergencyContact.Phone),
			huh.NewInput().Title("Email").Value(&contact.EmergencyContact.Email),
		).Title("Emergency contact (optional)"),
		huh.NewGroup(
			huh.NewConfirm().
				Title("I agree to the terms and conditions").
				Affirmative("Agree").
				Negative("Not yet").
				Value(&terms),
		),
	)
}

// ── Input helpers ────────────────────────────────────────────────────────────

func enumOptions[T ~string](values []T) []huh.Option[T] {
	out := make([]huh.Option[T], 0, len(values))
	for _, v := range values {
		out = append(out, huh.NewOption(formatter.Humanize(string(v)), v))
	}
	return out
}

// budgetAmountFor picks the amount to write after the range. An untouched
// amount follows a range change to the new midpoint; otherwise the typed
// amount wins.
func budgetAmountFor(initialRange domain.BudgetRange, initialAmount string, budgetRange domain.BudgetRange, amount string) int {
	if budgetRange != initialRange && strings.TrimSpace(amount) == strings.TrimSpace(initialAmount) {
		if band, ok := domain.BandFor(budgetRange); ok {
			return band.Midpoint()
		}
	}
	return atoiOrZero(amount)
}

// durationInputs maps a stored duration onto the select and custom input.
func durationInputs(days int) (choice int, custom string) {
	for _, n := range durationPresets {
		if n == days {
			return n, ""
		}
	}
	if days > 0 {
		return durationCustom, strconv.Itoa(days)
	}
	return durationCustom, ""
}

// durationFrom returns 0 for a custom length that has not been entered yet.
func durationFrom(choice int, custom string) int {
	if choice != durationCustom {
		return choice
	}
	return atoiOrZero(custom)
}

func parseStartDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(startDateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func validateStartDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(startDateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateWholeNumber(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func trimContact(c domain.ContactInfo) domain.ContactInfo {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Country = strings.TrimSpace(c.Country)
	c.EmergencyContact.Name = strings.TrimSpace(c.EmergencyContact.Name)
	c.EmergencyContact.Relationship = strings.TrimSpace(c.EmergencyContact.Relationship)
	c.EmergencyContact.Phone = strings.TrimSpace(c.EmergencyContact.Phone)
	c.EmergencyContact.Email = strings.TrimSpace(c.EmergencyContact.Email)
	return c
}

// stepChecklist marks the steps before rec.Step done and counts the problems
// left on every step the user has reached.
func stepChecklist(rec domain.StoredDraft) []formatter.StepItem {
	items := make([]formatter.StepItem, 0, len(stepViews))
	for i, view := range stepViews {
		item := formatter.StepItem{Title: view.Title()}
		switch {
		case i < rec.Step:
			item.State = formatter.StepDone
		case i == rec.Step:
			item.State = formatter.StepCurrent
		}
		if i <= rec.Step {
			var verr *domain.ValidationError
			if errors.As(domain.ValidateStep(rec.TripDraft, i), &verr) {
				item.Detail = fmt.Sprintf("%d to fix", len(verr.Problems))
			}
		}
		items = append(items, item)
	}
	return items
}
