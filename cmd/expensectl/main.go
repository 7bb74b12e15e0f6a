package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"spese-client/internal/cli"
)

type rootOptions struct {
	output string
}

func main() {
	cli.LoadEnvFile()

	ctx, stop := cli.SignalContext(context.Background())
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "expensectl",
		Short:         "Expense tracker client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", formatText, "output format: text|json|yaml")

	root.AddCommand(newSignUpCmd(opts))
	root.AddCommand(newLoginCmd(opts))
	root.AddCommand(newLogoutCmd(opts))
	root.AddCommand(newWhoAmICmd(opts))
	root.AddCommand(newPingCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newAddCmd(opts))
	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newDeleteCmd(opts))
	root.AddCommand(newDashboardCmd(opts))
	root.AddCommand(newCategoriesCmd(opts))
	root.AddCommand(newExportCmd(opts))
	return root
}

func loadApp(ctx context.Context) (*cli.App, error) {
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	logger := cli.SetupLogger(cfg.LogLevel)
	return cli.NewApp(ctx, cfg, logger)
}

// withApp runs fn against a freshly wired app and releases it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *cli.App) error) error {
	ctx := cmd.Context()
	app, err := loadApp(ctx)
	if err != nil {
		return err
	}
	runErr := fn(ctx, app)
	if err := app.Close(); err != nil {
		app.Logger.Warn("Failed to close backend", "error", err)
	}
	return runErr
}

func (o *rootOptions) printer(cmd *cobra.Command) printer {
	return printer{format: strings.ToLower(o.output), w: cmd.OutOrStdout()}
}

// stateError turns a controller error message into a command failure.
func stateError(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}
