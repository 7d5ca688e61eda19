package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/summitroutes/trekplan/internal/cli/formatter"
	"github.com/summitroutes/trekplan/internal/domain"
	"github.com/summitroutes/trekplan/internal/service"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to submit trip requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if app.interactive() && (email == "" || password == "") {
				if err := promptCredentials(&email, &password); err != nil {
					return err
				}
			}
			if strings.TrimSpace(email) == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Signing in...", app.interactive())
			session, err := app.Auth.Login(ctx, email, password)
			stop()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			who := session.UserEmail
			if session.UserName != "" {
				who = fmt.Sprintf("%s <%s>", session.UserName, session.UserEmail)
			}
			fmt.Fprintln(w, formatter.Notice(formatter.NoticeSuccess, "Signed in as "+who))

			if rec, err := app.Store.Load(ctx); err == nil && rec != nil && rec.IsSubmissionPending {
				fmt.Fprintln(w, formatter.Dim("Your saved trip request is ready. Run `trekplan plan` to submit it."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")

	return cmd
}

func promptCredentials(email, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password),
		),
	).WithTheme(trekplanHuhTheme())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("sign-in cancelled")
		}
		return err
	}
	return nil
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Notice(formatter.NoticeSuccess, "Signed out."))
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			session, err := app.Auth.Current(ctx)
			if errors.Is(err, service.ErrNotSignedIn) {
				fmt.Fprintln(w, formatter.Dim("Not signed in. Run `trekplan login`."))
				return nil
			}
			if err != nil {
				return err
			}

			if _, err := app.Auth.Token(ctx); errors.Is(err, service.ErrSessionExpired) {
				fmt.Fprintln(w, formatter.Notice(formatter.NoticeWarning, "Session for "+session.UserEmail+" has expired. Run `trekplan login`."))
				return nil
			}

			rows := [][]string{
				{"Name", domain.CoalesceStr(session.UserName, "-")},
				{"Email", session.UserEmail},
				{"Signed in", formatter.RelativeTimeFrom(session.CreatedAt, app.now())},
			}
			fmt.Fprintln(w, formatter.RenderTable([]string{"Account", ""}, rows))
			return nil
		},
	}
}
