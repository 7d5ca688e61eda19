package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/summitroutes/trekplan/internal/cli/formatter"
	"github.com/summitroutes/trekplan/internal/domain"
	"github.com/summitroutes/trekplan/internal/export"
)

var errNoDraft = errors.New("no saved draft; start one with `trekplan plan`")

func newDraftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect, export or discard the saved trip draft",
	}

	cmd.AddCommand(
		newDraftShowCmd(app),
		newDraftDiscardCmd(app),
		newDraftExportCmd(app),
	)

	return cmd
}

func newDraftShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Store.Load(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if rec == nil {
				fmt.Fprintln(w, formatter.Dim("No saved draft."))
				return nil
			}
			catalog := app.Catalog.Destinations(cmd.Context())
			fmt.Fprintln(w, formatter.RenderBox("Saved draft", formatter.DraftSummary(*rec, catalog, app.now())))
			fmt.Fprintln(w, formatter.RenderStepChecklist(stepChecklist(*rec)))
			fmt.Fprintln(w, formatter.RenderMarkdown(formatter.ReviewMarkdown(rec.TripDraft, catalog), reviewWidth))
			return nil
		},
	}
}

func newDraftDiscardCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "discard",
		Short: "Delete the saved draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if !yes && app.interactive() && !confirm(cmd.InOrStdin(), w, "Discard the saved draft?", false) {
				fmt.Fprintln(w, formatter.Dim("Kept the saved draft."))
				return nil
			}
			if err := app.Store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(w, formatter.Notice(formatter.NoticeSuccess, "Saved draft discarded."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newDraftExportCmd(app *App) *cobra.Command {
	var out string
	var noQR bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the saved draft as a PDF summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(out) == "" {
				return fmt.Errorf("--out is required")
			}
			rec, err := app.Store.Load(cmd.Context())
			if err != nil {
				return err
			}
			if rec == nil {
				return errNoDraft
			}
			catalog := app.Catalog.Destinations(cmd.Context())

			opts := export.Options{GeneratedAt: app.now()}
			if !noQR {
				opts.QRPayload = draftQRPayload(rec.TripDraft, catalog)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := export.WriteTripPDF(f, rec.TripDraft, catalog, opts); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}

			app.logger().Info("draft_exported", "path", out, "qr", !noQR)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Notice(formatter.NoticeSuccess, "Wrote "+out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output PDF path")
	cmd.Flags().BoolVar(&noQR, "no-qr", false, "Leave out the QR code")

	return cmd
}

// draftQRPayload is the short text encoded in the export's QR code, enough
// for a guide to identify the request from a printout.
func draftQRPayload(d domain.TripDraft, catalog []domain.Destination) string {
	parts := []string{
		"Trip: " + d.DestinationLabel(catalog),
		"Dates: " + formatter.TrekDates(d),
		fmt.Sprintf("Group: %d", d.GroupSize),
		"Budget: " + formatter.Money(d.BudgetAmount),
	}
	if d.ContactInfo.Email != "" {
		parts = append(parts, "Contact: "+d.ContactInfo.Email)
	}
	return strings.Join(parts, "\n")
}
