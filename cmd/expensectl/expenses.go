package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"spese-client/internal/cli"
	"spese-client/internal/controller"
	"spese-client/internal/core"
)

// parseCategory accepts an empty string as "all categories".
func parseCategory(s string) (core.Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	c := core.NormalizeCategory(s)
	if !strings.EqualFold(c.String(), s) {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := parseCategory(category)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				st, err := loadList(ctx, app, cat)
				if err != nil {
					return err
				}
				views := newExpenseViews(st.Expenses)
				return opts.printer(cmd).print(views, func(w io.Writer) { writeExpenses(w, views) })
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only show this category")
	return cmd
}

func loadList(ctx context.Context, app *cli.App, category core.Category) (controller.ListState, error) {
	c := controller.NewListController(ctx, app.Expenses, category, app.Logger)
	defer c.Close()
	c.Wait()

	st := c.State()
	if err := stateError(st.Error); err != nil {
		return st, err
	}
	return st, nil
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				form := controller.NewFormController(ctx, app.Expenses, app.Sessions, args[0], app.Logger)
				defer form.Close()
				form.Wait()

				st := form.State()
				if err := stateError(st.Error); err != nil {
					return err
				}
				view := formView(st)
				return opts.printer(cmd).print(view, func(w io.Writer) { writeExpense(w, view) })
			})
		},
	}
}

type expenseFlags struct {
	amount      string
	description string
	date        string
	category    string
}

func (f *expenseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount, dot or comma decimal separator")
	cmd.Flags().StringVar(&f.description, "description", "", "what the money went on")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS (default now)")
	cmd.Flags().StringVar(&f.category, "category", "", "one of: "+categoryList())
}

// apply copies the flags the user set onto the form.
func (f *expenseFlags) apply(cmd *cobra.Command, form *controller.FormController) error {
	if cmd.Flags().Changed("amount") {
		form.SetAmount(f.amount)
	}
	if cmd.Flags().Changed("description") {
		form.SetDescription(f.description)
	}
	if cmd.Flags().Changed("date") {
		d, err := core.ParseTimestamp(f.date)
		if err != nil {
			return fmt.Errorf("invalid --date %q", f.date)
		}
		form.SetDate(d)
	}
	if cmd.Flags().Changed("category") {
		c, err := parseCategory(f.category)
		if err != nil {
			return err
		}
		if c != "" {
			form.SetCategory(c)
		}
	}
	return nil
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var f expenseFlags
	cmd := &cobra.Command{
		Use:   "add --amount <amount> --description <text>",
		Short: "Record a new expense",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				form := controller.NewFormController(ctx, app.Expenses, app.Sessions, "", app.Logger)
				defer form.Close()
				return saveForm(cmd, opts, &f, form)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var f expenseFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an existing expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				form := controller.NewFormController(ctx, app.Expenses, app.Sessions, args[0], app.Logger)
				defer form.Close()
				form.Wait()
				if err := stateError(form.State().Error); err != nil {
					return err
				}
				return saveForm(cmd, opts, &f, form)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func saveForm(cmd *cobra.Command, opts *rootOptions, f *expenseFlags, form *controller.FormController) error {
	if err := f.apply(cmd, form); err != nil {
		return err
	}
	form.Save()
	form.Wait()

	st := form.State()
	if len(st.ValidationErrors) > 0 {
		return fmt.Errorf("invalid expense: %s", formatFieldErrors(st.ValidationErrors))
	}
	if err := stateError(st.Error); err != nil {
		return err
	}
	if !st.IsSaved {
		return fmt.Errorf("expense not saved")
	}
	view := formView(st)
	return opts.printer(cmd).print(view, func(w io.Writer) {
		_, _ = fmt.Fprintf(w, "saved expense %s\n", view.ID)
	})
}

func formView(st controller.FormState) expenseView {
	amount := st.Amount
	if d, err := core.ParseAmount(st.Amount); err == nil {
		amount = core.FormatAmount(d)
	}
	return expenseView{
		ID:          st.ExpenseID,
		Date:        core.FormatDate(st.Date),
		Description: st.Description,
		Amount:      amount,
		Category:    st.Category.String(),
	}
}

func formatFieldErrors(errs core.FieldErrors) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+errs[k])
	}
	return strings.Join(parts, "; ")
}

func newDeleteCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				c := controller.NewListController(ctx, app.Expenses, "", app.Logger)
				defer c.Close()
				c.Wait()

				c.Delete(args[0])
				c.Wait()
				if err := stateError(c.State().Error); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted expense %s (%d left)\n", args[0], len(c.State().Expenses))
				return nil
			})
		},
	}
}

func categoryNames() []string {
	cats := core.Categories()
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.String())
	}
	return names
}

func categoryList() string {
	return strings.Join(categoryNames(), ", ")
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List expense categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := categoryNames()
			return opts.printer(cmd).print(names, func(w io.Writer) {
				for _, n := range names {
					_, _ = fmt.Fprintln(w, n)
				}
			})
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Append expenses to the configured Google Sheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := parseCategory(category)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				exporter, err := app.NewExporter(ctx)
				if err != nil {
					return err
				}
				st, err := loadList(ctx, app, cat)
				if err != nil {
					return err
				}
				res, err := exporter.Export(ctx, st.Expenses)
				if err != nil {
					return err
				}
				return opts.printer(cmd).print(map[string]any{"range": res.Range, "rows": res.Rows}, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "exported %d expenses to %s\n", res.Rows, res.Range)
				})
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only export this category")
	return cmd
}
