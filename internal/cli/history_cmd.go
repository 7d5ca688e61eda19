package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/summitroutes/trekplan/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List trip requests submitted from this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be at least 1")
			}
			return app.printHistory(cmd.Context(), cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of requests to show")

	return cmd
}

func (a *App) printHistory(ctx context.Context, w io.Writer, limit int) error {
	receipts, err := a.History.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("loading trip history: %w", err)
	}
	if len(receipts) == 0 {
		fmt.Fprintln(w, formatter.Dim("No trip requests submitted yet. Start one with `trekplan plan`."))
		return nil
	}
	fmt.Fprintln(w, formatter.Header("Your trip requests"))
	fmt.Fprintln(w, formatter.ReceiptTable(receipts, a.now()))
	return nil
}
