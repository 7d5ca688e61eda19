// Package export renders a trip draft as a printable PDF summary.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/summitroutes/trekplan/internal/domain"
)

const dateLayout = "Mon, 2 Jan 2006"

// Options tweaks the rendered document.
type Options struct {
	// Title defaults to "Custom Trip Request".
	Title string
	// GeneratedAt is printed in the footer. Zero means time.Now.
	GeneratedAt time.Time
	// QRPayload, when set, is printed as a QR code next to the title.
	QRPayload string
}

// WriteTripPDF writes an A4 summary of d to w. catalog resolves the
// destination label.
func WriteTripPDF(w io.Writer, d domain.TripDraft, catalog []domain.Destination, opts Options) error {
	if opts.Title == "" {
		opts.Title = "Custom Trip Request"
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreator("trekplan", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, tr(opts.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, tr(d.DestinationLabel(catalog)), "", 1, "L", false, 0, "")

	if opts.QRPayload != "" {
		png, err := qrcode.Encode(opts.QRPayload, qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("encoding qr code: %w", err)
		}
		imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(png))
		pdf.ImageOptions("qr", 160, 15, 30, 30, false, imgOpts, 0, "")
	}
	pdf.Ln(6)

	for _, sec := range sections(d) {
		pdf.SetFont("Arial", "B", 13)
		pdf.SetFillColor(235, 242, 235)
		pdf.CellFormat(0, 9, tr(sec.title), "", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 11)
		for _, row := range sec.rows {
			pdf.CellFormat(55, 7, tr(row[0]), "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 7, tr(row[1]), "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 9, "Indicative budget split (per person)", "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, line := range domain.BudgetBreakdown(d.BudgetAmount) {
		pdf.CellFormat(55, 7, tr(line.Category), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d%%", line.Percent), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("$%d", line.Amount), "", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Generated "+opts.GeneratedAt.Format("2 Jan 2006 15:04 MST"), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

type section struct {
	title string
	rows  [][2]string
}

func sections(d domain.TripDraft) []section {
	return []section{
		{"Trek details", [][2]string{
			{"Dates", dateRange(d)},
			{"Duration", durationText(d.Duration)},
		}},
		{"Group & experience", [][2]string{
			{"Group", fmt.Sprintf("%d (%s)", d.GroupSize, d.GroupType)},
			{"Ages", fmt.Sprintf("%d-%d", d.AgeRange.Min, d.AgeRange.Max)},
			{"Experience", string(d.ExperienceLevel)},
			{"Fitness", string(d.FitnessLevel)},
		}},
		{"Accommodation & meals", [][2]string{
			{"Accommodation", string(d.Accommodation)},
			{"Meals", joinOr(d.MealPreferences, "none selected")},
			{"Dietary notes", orDash(d.DietaryRestrictions)},
		}},
		{"Services & transport", [][2]string{
			{"Guide", yesNo(d.GuideRequired)},
			{"Porter", yesNo(d.PorterRequired)},
			{"Transport", joinOr(d.Transportation, "none selected")},
			{"Insurance", yesNo(d.InsuranceRequired)},
			{"Equipment rental", yesNo(d.EquipmentRental)},
		}},
		{"Budget", [][2]string{
			{"Range", string(d.BudgetRange)},
			{"Amount", fmt.Sprintf("$%d per person", d.BudgetAmount)},
		}},
		{"Contact", [][2]string{
			{"Name", orDash(d.ContactInfo.Name)},
			{"Email", orDash(d.ContactInfo.Email)},
			{"Phone", orDash(d.ContactInfo.Phone)},
			{"Country", orDash(d.ContactInfo.Country)},
			{"Emergency contact", emergencyText(d.ContactInfo.EmergencyContact)},
			{"Special requests", orDash(d.SpecialRequests)},
		}},
	}
}

func dateRange(d domain.TripDraft) string {
	if d.StartDate == nil {
		return "not chosen"
	}
	if d.EndDate == nil {
		return d.StartDate.Format(dateLayout)
	}
	return d.StartDate.Format(dateLayout) + " to " + d.EndDate.Format(dateLayout)
}

func durationText(days int) string {
	switch days {
	case 0:
		return "not set"
	case 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func emergencyText(e domain.EmergencyContact) string {
	if e.Name == "" {
		return "-"
	}
	parts := []string{e.Name}
	if e.Relationship != "" {
		parts[0] += " (" + e.Relationship + ")"
	}
	if e.Phone != "" {
		parts = append(parts, e.Phone)
	}
	if e.Email != "" {
		parts = append(parts, e.Email)
	}
	return strings.Join(parts, ", ")
}

func joinOr[T ~string](vals []T, empty string) string {
	if len(vals) == 0 {
		return empty
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return strings.Join(out, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
