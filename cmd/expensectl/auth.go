package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"spese-client/internal/cli"
	"spese-client/internal/controller"
)

type credentialFlags struct {
	email    string
	password string
	confirm  string
}

func newSignUpCmd(opts *rootOptions) *cobra.Command {
	var f credentialFlags
	cmd := &cobra.Command{
		Use:   "signup --email <email> --password <password>",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			confirm := f.confirm
			if !cmd.Flags().Changed("confirm") {
				confirm = f.password
			}
			return runAuth(cmd, opts, func(c *controller.AuthController) {
				c.SignUp(f.email, f.password, confirm)
			})
		},
	}
	cmd.Flags().StringVar(&f.email, "email", "", "account email")
	cmd.Flags().StringVar(&f.password, "password", "", "account password")
	cmd.Flags().StringVar(&f.confirm, "confirm", "", "password confirmation (defaults to --password)")
	return cmd
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var f credentialFlags
	cmd := &cobra.Command{
		Use:   "login --email <email> --password <password>",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuth(cmd, opts, func(c *controller.AuthController) {
				c.SignIn(f.email, f.password)
			})
		},
	}
	cmd.Flags().StringVar(&f.email, "email", "", "account email")
	cmd.Flags().StringVar(&f.password, "password", "", "account password")
	return cmd
}

func runAuth(cmd *cobra.Command, opts *rootOptions, start func(c *controller.AuthController)) error {
	return withApp(cmd, func(ctx context.Context, app *cli.App) error {
		c := controller.NewAuthController(ctx, app.Auth, app.Sessions, app.Logger)
		defer c.Close()

		start(c)
		c.Wait()

		st := c.State()
		if err := stateError(st.Error); err != nil {
			return err
		}
		if st.User == nil {
			return fmt.Errorf("not signed in")
		}
		view := newSessionView(*st.User)
		return opts.printer(cmd).print(view, func(w io.Writer) {
			_, _ = fmt.Fprintf(w, "signed in as %s\n", view.Email)
		})
	})
}

func newLogoutCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				c := controller.NewAuthController(ctx, app.Auth, app.Sessions, app.Logger)
				defer c.Close()

				c.SignOut()
				if err := stateError(c.State().Error); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			})
		},
	}
}

func newWhoAmICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(_ context.Context, app *cli.App) error {
				user := app.Auth.CurrentUser()
				if user == nil {
					return fmt.Errorf("not signed in")
				}
				view := newSessionView(*user)
				return opts.printer(cmd).print(view, func(w io.Writer) { writeSession(w, view) })
			})
		},
	}
}

func newPingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				resp, err := app.API.Health(ctx)
				if err != nil {
					return fmt.Errorf("health check: %w", err)
				}
				if !resp.IsSuccessful() || resp.Body == nil {
					return fmt.Errorf("health check: %s", resp.Status)
				}
				return opts.printer(cmd).print(resp.Body, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "%s (%s)\n", resp.Body.Status, app.Config.APIBaseURL)
				})
			})
		},
	}
}
