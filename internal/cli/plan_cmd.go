package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/summitroutes/trekplan/internal/planner"
)

// errNotInteractive is returned when the wizard is started without a TTY.
var errNotInteractive = errors.New("the trip planner needs an interactive terminal")

func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Build a custom trip request step by step",
		Long: `Walks through the six steps of a custom trip request: trek details,
group and experience, accommodation and meals, services and transport,
budget and dates, then review and submit.

Progress is saved when you leave the wizard, and a saved draft is offered
the next time you run plan.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			ctx := cmd.Context()

			ctrl := app.newController()
			phase, err := ctrl.Initialize(ctx)
			if err != nil {
				return err
			}

			model := newWizardModel(ctx, ctrl, phase, app.Now)
			final, err := tea.NewProgram(model,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return fmt.Errorf("running wizard: %w", err)
			}

			m, ok := final.(*wizardModel)
			if !ok {
				return nil
			}
			if m.err != nil {
				return m.err
			}
			return app.afterWizard(cmd, m.outcome)
		},
	}
}

// afterWizard prints where a finished wizard leads: the trip history after a
// submission.
func (a *App) afterWizard(cmd *cobra.Command, out *planner.SubmitOutcome) error {
	if out == nil || out.Status != planner.OutcomeSubmitted || a.History == nil {
		return nil
	}
	return a.printHistory(cmd.Context(), cmd.OutOrStdout(), 5)
}
