package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/summitroutes/trekplan/internal/domain"
)

const tripDateLayout = "Mon, 2 Jan 2006"

// TrekDates renders the computed date range, e.g.
// "Mon, 2 Nov 2026 → Sun, 15 Nov 2026 (14 days)".
func TrekDates(d domain.TripDraft) string {
	switch {
	case d.StartDate == nil && d.Duration <= 0:
		return "Dates not chosen yet"
	case d.StartDate == nil:
		return fmt.Sprintf("%s, start date not chosen", days(d.Duration))
	case d.EndDate == nil:
		return fmt.Sprintf("Starts %s, duration not set", d.StartDate.Format(tripDateLayout))
	}
	return fmt.Sprintf("%s → %s (%s)",
		d.StartDate.Format(tripDateLayout), d.EndDate.Format(tripDateLayout), days(d.Duration))
}

// BudgetBreakdown renders the indicative per-person split of the budget.
func BudgetBreakdown(d domain.TripDraft) string {
	rows := make([][]string, 0, 6)
	for _, line := range domain.BudgetBreakdown(d.BudgetAmount) {
		rows = append(rows, []string{line.Category, fmt.Sprintf("%d%%", line.Percent), Money(line.Amount)})
	}
	return RenderTable([]string{"Category", "Share", "Amount"}, rows, 1, 2)
}

// BudgetBand describes the selected range, e.g. "Comfort: $2,000 to $3,500".
func BudgetBand(r domain.BudgetRange) string {
	band, ok := domain.BandFor(r)
	if !ok {
		return "Choose a budget range"
	}
	return fmt.Sprintf("%s: %s to %s", Humanize(string(r)), Money(band.Min), Money(band.Max))
}

// ReviewMarkdown renders the whole draft as markdown for the review step.
func ReviewMarkdown(d domain.TripDraft, catalog []domain.Destination) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", d.DestinationLabel(catalog))
	fmt.Fprintf(&b, "%s\n\n", TrekDates(d))

	b.WriteString("### Group & experience\n\n")
	fmt.Fprintf(&b, "- **Travellers:** %d (%s), ages %d to %d\n", d.GroupSize, Humanize(string(d.GroupType)), d.AgeRange.Min, d.AgeRange.Max)
	fmt.Fprintf(&b, "- **Experience:** %s, **fitness:** %s\n\n", Humanize(string(d.ExperienceLevel)), Humanize(string(d.FitnessLevel)))

	b.WriteString("### Accommodation & meals\n\n")
	fmt.Fprintf(&b, "- **Stay:** %s\n", Humanize(string(d.Accommodation)))
	fmt.Fprintf(&b, "- **Meals:** %s\n", humanList(d.MealPreferences))
	if d.DietaryRestrictions != "" {
		fmt.Fprintf(&b, "- **Dietary notes:** %s\n", d.DietaryRestrictions)
	}
	b.WriteString("\n### Services & transport\n\n")
	fmt.Fprintf(&b, "- **Transport:** %s\n", humanList(d.Transportation))
	fmt.Fprintf(&b, "- **Guide:** %s, **porter:** %s\n", yesNoPlain(d.GuideRequired), yesNoPlain(d.PorterRequired))
	fmt.Fprintf(&b, "- **Insurance:** %s, **equipment rental:** %s\n\n", yesNoPlain(d.InsuranceRequired), yesNoPlain(d.EquipmentRental))

	b.WriteString("### Budget\n\n")
	fmt.Fprintf(&b, "%s per person (%s)\n\n", Money(d.BudgetAmount), BudgetBand(d.BudgetRange))
	b.WriteString("| Category | Share | Amount |\n|---|---:|---:|\n")
	for _, line := range domain.BudgetBreakdown(d.BudgetAmount) {
		fmt.Fprintf(&b, "| %s | %d%% | %s |\n", line.Category, line.Percent, Money(line.Amount))
	}
	if d.SpecialRequests != "" {
		fmt.Fprintf(&b, "\n### Special requests\n\n%s\n", d.SpecialRequests)
	}
	return b.String()
}

// DraftSummary is the one-paragraph description of a stored draft shown in
// the resume prompt and by `draft show`.
func DraftSummary(rec domain.StoredDraft, catalog []domain.Destination, now time.Time) string {
	dest := "No destination yet"
	if rec.Destination != "" {
		dest = rec.DestinationLabel(catalog)
	}
	lines := []string{
		Bold(dest),
		TrekDates(rec.TripDraft),
		Dim(fmt.Sprintf("Saved %s on step %d of %d", RelativeTimeFrom(rec.LastSaved, now), rec.Step+1, domain.StepCount)),
	}
	if rec.IsSubmissionPending {
		lines = append(lines, Notice(NoticeWarning, "Waiting to be submitted after sign-in"))
	}
	return strings.Join(lines, "\n")
}

// DestinationTable lists the catalog.
func DestinationTable(dests []domain.Destination) string {
	rows := make([][]string, 0, len(dests))
	for _, d := range dests {
		rows = append(rows, []string{d.ID, d.Label, d.DurationHint})
	}
	return RenderTable([]string{"ID", "Trek", "Typical length"}, rows)
}

// ReceiptTable lists local submission receipts, newest first.
func ReceiptTable(receipts []*domain.SubmissionReceipt, now time.Time) string {
	rows := make([][]string, 0, len(receipts))
	for _, r := range receipts {
		start := "-"
		if r.StartDate != nil {
			start = r.StartDate.Format("2 Jan 2006")
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			r.Destination,
			start,
			days(r.Duration),
			fmt.Sprintf("%d", r.GroupSize),
			Money(r.BudgetAmount),
			RelativeTimeFrom(r.SubmittedAt, now),
		})
	}
	return RenderTable([]string{"ID", "Destination", "Start", "Length", "Group", "Budget", "Submitted"}, rows, 4, 5)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func humanList[T ~string](vals []T) string {
	if len(vals) == 0 {
		return "none selected"
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = Humanize(string(v))
	}
	return strings.Join(out, ", ")
}

func yesNoPlain(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
