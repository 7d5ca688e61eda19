package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/summitroutes/trekplan/internal/booking"
	"github.com/summitroutes/trekplan/internal/cli"
	"github.com/summitroutes/trekplan/internal/config"
	"github.com/summitroutes/trekplan/internal/db"
	"github.com/summitroutes/trekplan/internal/logging"
	"github.com/summitroutes/trekplan/internal/repository"
	"github.com/summitroutes/trekplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var (
		database *sql.DB
		logClose io.Closer
	)
	defer func() {
		if database != nil {
			database.Close()
		}
		if logClose != nil {
			logClose.Close()
		}
	}()

	app := &cli.App{Now: time.Now}

	// Detect interactive terminal for the wizard and prompts.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	app.Bootstrap = func(cfg *config.Config) error {
		logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile, os.Stderr)
		if err != nil {
			return err
		}
		logClose = closer
		app.Logger = logger

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		// Wire repositories
		drafts := repository.NewSQLiteDraftStore(database)
		sessions := repository.NewSQLiteAuthSessionRepo(database)
		submissions := repository.NewSQLiteSubmissionRepo(database)

		// Wire the API client
		bookingCfg := booking.DefaultConfig()
		bookingCfg.Endpoint = cfg.APIEndpoint
		bookingCfg.TimeoutMs = cfg.TimeoutMs
		bookingCfg.MaxRetries = cfg.MaxRetries
		var observer booking.Observer = booking.NoopObserver{}
		if cfg.LogCalls {
			observer = booking.NewLogObserver(logger)
		}
		client := booking.NewClient(bookingCfg, observer)

		// Wire services
		useCases := service.NewLogUseCaseObserver(logger)
		app.Store = drafts
		app.Booking = client
		app.Catalog = service.NewCatalogService(client, logger, useCases)
		app.Auth = service.NewAuthService(client, sessions, time.Now, useCases)
		app.History = service.NewHistoryService(submissions, time.Now)

		logger.Debug("bootstrap_complete", "db", cfg.DBPath, "api", cfg.APIEndpoint)
		return nil
	}

	// Execute root command
	return cli.NewRootCmd(app).Execute()
}
