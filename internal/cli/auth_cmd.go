package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/focuslog/internal/auth"
	"github.com/alexanderramin/focuslog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// runLoginForm is swapped in tests; the real form needs a terminal.
var runLoginForm = func(title string, in *loginInput) error {
	return loginForm(title, in).Run()
}

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Connect to the focus service or switch to the local store",
	}

	cmd.AddCommand(
		newAuthFlowCmd(app, "login", "Log in to the focus service", app.authLogin),
		newAuthFlowCmd(app, "register", "Create an account on the focus service", app.authRegister),
		&cobra.Command{
			Use:   "debug",
			Short: "Skip login and read sessions from the local store",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				creds, err := app.Auth.DebugLogin()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Debug login active %s\n", formatter.SourceBadge(creds.Mode))
				return nil
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget stored credentials",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Auth.Logout(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the stored credentials",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				creds, err := app.Auth.Current()
				if errors.Is(err, auth.ErrNoCredentials) {
					creds, err = nil, nil
				}
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAuthStatus(creds))
				return nil
			},
		},
	)

	return cmd
}

type authFlow func(ctx context.Context, in loginInput) (*auth.Credentials, error)

func (a *App) authLogin(ctx context.Context, in loginInput) (*auth.Credentials, error) {
	return a.Auth.Login(ctx, in.Username, in.Password, in.APIURL)
}

func (a *App) authRegister(ctx context.Context, in loginInput) (*auth.Credentials, error) {
	return a.Auth.Register(ctx, in.Username, in.Password, in.APIURL)
}

func newAuthFlowCmd(app *App, use, short string, flow authFlow) *cobra.Command {
	var in loginInput

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.APIURL == "" {
				if prev, err := app.Auth.Current(); err == nil {
					in.APIURL = prev.APIURL
				}
			}
			if !in.complete() {
				if !app.interactive() {
					return fmt.Errorf("%s is required when not running in a terminal", in.missing())
				}
				if err := runLoginForm(short, &in); err != nil {
					return err
				}
			}

			creds, err := flow(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s %s\n", formatter.Bold(creds.Username), formatter.SourceBadge(creds.Mode))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.APIURL, "url", "", "Focus service API URL")
	cmd.Flags().StringVar(&in.Username, "username", "", "Account username")
	cmd.Flags().StringVar(&in.Password, "password", "", "Account password")

	return cmd
}
