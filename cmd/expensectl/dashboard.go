package main

import (
	"context"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"spese-client/internal/cli"
	"spese-client/internal/controller"
	"spese-client/internal/core"
)

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	var recent int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals per category and the latest expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				var (
					summary controller.DashboardState
					latest  []core.Expense
				)

				g, gctx := errgroup.WithContext(ctx)
				g.Go(func() error {
					c := controller.NewDashboardController(gctx, app.Expenses, app.Logger)
					defer c.Close()
					c.Wait()
					summary = c.State()
					return stateError(summary.Error)
				})
				if recent > 0 {
					g.Go(func() error {
						st, err := loadList(gctx, app, "")
						if err != nil {
							return err
						}
						latest = mostRecent(st.Expenses, recent)
						return nil
					})
				}
				if err := g.Wait(); err != nil {
					return err
				}

				view := newDashboardView(summary, latest)
				return opts.printer(cmd).print(view, func(w io.Writer) { writeDashboard(w, view) })
			})
		},
	}
	cmd.Flags().IntVar(&recent, "recent", 5, "number of latest expenses to show (0 to skip)")
	return cmd
}

// mostRecent returns the n newest expenses, newest first.
func mostRecent(list []core.Expense, n int) []core.Expense {
	out := append([]core.Expense(nil), list...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
