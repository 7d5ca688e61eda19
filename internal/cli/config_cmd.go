package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/summitroutes/trekplan/internal/cli/formatter"
	"github.com/summitroutes/trekplan/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage trekplan configuration",
	}

	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigShowCmd(app),
	)

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var global, force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with the current settings",
		Annotations: map[string]string{skipBootstrap: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectPath()
			if global {
				path = config.GlobalPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if global {
				path, err = config.WriteGlobal(cfg)
			} else {
				path, err = config.WriteProject(cfg)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Notice(formatter.NoticeSuccess, "Wrote "+path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Write the user-wide config instead of ./trekplan.yml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Print the effective configuration",
		Annotations: map[string]string{skipBootstrap: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if cfg == nil {
				loaded, err := config.Load(cmd.Flags())
				if err != nil {
					return err
				}
				cfg = loaded
			}
			rows := [][]string{
				{"api_endpoint", cfg.APIEndpoint},
				{"db_path", cfg.DBPath},
				{"timeout_ms", fmt.Sprintf("%d", cfg.TimeoutMs)},
				{"max_retries", fmt.Sprintf("%d", cfg.MaxRetries)},
				{"log_level", cfg.LogLevel},
				{"log_file", cfg.LogFile},
				{"log_calls", fmt.Sprintf("%t", cfg.LogCalls)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable([]string{"Key", "Value"}, rows))
			return nil
		},
	}
}
