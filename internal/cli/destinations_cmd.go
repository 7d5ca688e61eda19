package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/summitroutes/trekplan/internal/cli/formatter"
)

func newDestinationsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "destinations",
		Aliases: []string{"treks"},
		Short:   "List the treks you can request",
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Fetching treks...", app.interactive())
			dests := app.Catalog.Destinations(cmd.Context())
			stop()

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header("Destinations"))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.DestinationTable(dests))
			return nil
		},
	}
}
