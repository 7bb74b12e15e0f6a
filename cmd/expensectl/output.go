package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"spese-client/internal/controller"
	"spese-client/internal/core"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type expenseView struct {
	ID          string `json:"id" yaml:"id"`
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
	Amount      string `json:"amount" yaml:"amount"`
	Category    string `json:"category" yaml:"category"`
}

type sessionView struct {
	UserID    string `json:"user_id" yaml:"user_id"`
	Email     string `json:"email" yaml:"email"`
	ExpiresAt string `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

type categoryView struct {
	Category string  `json:"category" yaml:"category"`
	Total    string  `json:"total" yaml:"total"`
	Count    int     `json:"count" yaml:"count"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

type dashboardView struct {
	OverallTotal string         `json:"overall_total" yaml:"overall_total"`
	TotalCount   int            `json:"total_count" yaml:"total_count"`
	Categories   []categoryView `json:"categories" yaml:"categories"`
	Recent       []expenseView  `json:"recent,omitempty" yaml:"recent,omitempty"`
}

func newExpenseView(e core.Expense) expenseView {
	return expenseView{
		ID:          e.ID,
		Date:        core.FormatDate(e.Date),
		Description: e.Description,
		Amount:      core.FormatAmount(e.Amount),
		Category:    e.Category.String(),
	}
}

func newExpenseViews(list []core.Expense) []expenseView {
	out := make([]expenseView, 0, len(list))
	for _, e := range list {
		out = append(out, newExpenseView(e))
	}
	return out
}

func newSessionView(s core.Session) sessionView {
	v := sessionView{UserID: s.UserID, Email: s.Email}
	if exp, ok := s.ExpiresAt(); ok {
		v.ExpiresAt = exp.UTC().Format(core.DateTimeLayout)
	}
	return v
}

func newDashboardView(st controller.DashboardState, recent []core.Expense) dashboardView {
	summary := st.Summary()
	shares := summary.Shares()
	v := dashboardView{
		OverallTotal: core.FormatAmount(st.OverallTotal),
		TotalCount:   st.TotalCount,
		Categories:   make([]categoryView, 0, len(st.CategoryBreakdown)),
		Recent:       newExpenseViews(recent),
	}
	for i, c := range st.CategoryBreakdown {
		v.Categories = append(v.Categories, categoryView{
			Category: c.Category.String(),
			Total:    core.FormatAmount(c.TotalAmount),
			Count:    c.Count,
			Percent:  shares[i].Percent,
		})
	}
	return v
}

// printer writes a value as JSON, YAML or through a text renderer.
type printer struct {
	format string
	w      io.Writer
}

func (p printer) print(v any, text func(w io.Writer)) error {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatText, "":
		text(p.w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", p.format)
	}
}

func writeExpenses(w io.Writer, list []expenseView) {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "no expenses")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tDATE\tAMOUNT\tCATEGORY\tDESCRIPTION")
	for _, e := range list {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Amount, e.Category, e.Description)
	}
	_ = tw.Flush()
}

func writeExpense(w io.Writer, e expenseView) {
	_, _ = fmt.Fprintf(w, "id: %s\ndate: %s\namount: %s\ncategory: %s\ndescription: %s\n",
		e.ID, e.Date, e.Amount, e.Category, e.Description)
}

func writeSession(w io.Writer, s sessionView) {
	_, _ = fmt.Fprintf(w, "user: %s\nemail: %s\n", s.UserID, s.Email)
	if s.ExpiresAt != "" {
		_, _ = fmt.Fprintf(w, "expires: %s\n", s.ExpiresAt)
	}
}

func writeDashboard(w io.Writer, d dashboardView) {
	_, _ = fmt.Fprintf(w, "total: %s (%d expenses)\n", d.OverallTotal, d.TotalCount)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range d.Categories {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f%%\n", c.Category, c.Total, c.Count, c.Percent)
	}
	_ = tw.Flush()
	if len(d.Recent) > 0 {
		_, _ = fmt.Fprintln(w, "\nrecent:")
		writeExpenses(w, d.Recent)
	}
}
