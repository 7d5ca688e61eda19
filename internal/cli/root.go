package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/summitroutes/trekplan/internal/booking"
	"github.com/summitroutes/trekplan/internal/config"
	"github.com/summitroutes/trekplan/internal/logging"
	"github.com/summitroutes/trekplan/internal/planner"
	"github.com/summitroutes/trekplan/internal/service"
)

// skipBootstrap marks commands that must run without a database or API
// client, such as writing the config file.
const skipBootstrap = "trekplan/skip-bootstrap"

// App holds the dependencies used by CLI commands.
type App struct {
	Config  *config.Config
	Store   planner.DraftStore
	Booking booking.Client
	Catalog service.CatalogService
	Auth    service.AuthService
	History service.HistoryService
	Logger  *slog.Logger
	Now     func() time.Time

	// IsInteractive reports whether the terminal can host the wizard.
	IsInteractive func() bool

	// Bootstrap wires the fields above from the loaded config before any
	// subcommand runs. Tests build the App directly and leave it nil.
	Bootstrap func(cfg *config.Config) error
}

// NewRootCmd creates the top-level "trekplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "trekplan",
		Short:         "Plan and request custom treks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Bootstrap == nil || cmd.Annotations[skipBootstrap] == "true" {
				return nil
			}
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			app.Config = cfg
			return app.Bootstrap(cfg)
		},
	}

	root.PersistentFlags().String("api", "", "Booking API endpoint")
	root.PersistentFlags().String("db", "", "Path to the local database")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newPlanCmd(app),
		newDestinationsCmd(app),
		newDraftCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newHistoryCmd(app),
		newConfigCmd(app),
	)

	return root
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return logging.Discard()
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// newController builds a wizard controller over the App's dependencies.
func (a *App) newController() *planner.Controller {
	return planner.New(planner.Deps{
		Store:     a.Store,
		Submitter: a.Booking,
		Auth:      a.Auth,
		Catalog:   a.Catalog,
		History:   a.History,
		Logger:    a.logger(),
		Now:       a.Now,
	})
}
