package controller

import (
	"context"

	"github.com/shopspring/decimal"

	"spese-client/internal/core"
	"spese-client/internal/log"
)

type DashboardState struct {
	OverallTotal      decimal.Decimal
	TotalCount        int
	CategoryBreakdown []core.CategorySummary
	IsLoading         bool
	IsRefreshing      bool
	Error             string
}

// Summary returns the loaded figures as a core.DashboardSummary.
func (s DashboardState) Summary() core.DashboardSummary {
	return core.DashboardSummary{
		OverallTotal: s.OverallTotal,
		TotalCount:   s.TotalCount,
		PerCategory:  s.CategoryBreakdown,
	}
}

type DashboardController struct {
	svc    ExpenseService
	state  *State[DashboardState]
	scope  *Scope
	gen    Generation
	logger *log.Logger
}

// NewDashboardController starts loading the summary right away.
func NewDashboardController(parent context.Context, svc ExpenseService, logger *log.Logger) *DashboardController {
	if logger == nil {
		logger = log.Nop()
	}
	c := &DashboardController{
		svc:    svc,
		state:  NewState(DashboardState{}),
		scope:  NewScope(parent),
		logger: logger.WithComponent(log.ComponentController).With(log.FieldController, "dashboard"),
	}
	c.Load()
	return c
}

func (c *DashboardController) Load() { c.fetch(false) }

func (c *DashboardController) Refresh() { c.fetch(true) }

func (c *DashboardController) fetch(refresh bool) {
	n := c.gen.Next()
	commit(c.scope, c.state, nil, 0, func(st DashboardState) DashboardState {
		if refresh {
			st.IsRefreshing = true
		} else {
			st.IsLoading = true
		}
		st.Error = ""
		return st
	})

	c.scope.Go(func(ctx context.Context) {
		res := c.svc.DashboardSummary(ctx)
		applied := commit(c.scope, c.state, &c.gen, n, func(st DashboardState) DashboardState {
			st.IsLoading = false
			st.IsRefreshing = false
			res.Match(
				func(sum core.DashboardSummary) {
					st.OverallTotal = sum.OverallTotal
					st.TotalCount = sum.TotalCount
					st.CategoryBreakdown = sum.PerCategory
					st.Error = ""
				},
				func(msg string, _ error) {
					st.Error = msg
				},
				nil,
			)
			return st
		})
		if !applied {
			c.logger.DebugContext(ctx, "Discarded stale dashboard response", log.FieldGeneration, n)
		}
	})
}

// Percentage returns categoryTotal as a percentage of the loaded overall
// total, or 0 while that total is zero.
func (c *DashboardController) Percentage(categoryTotal decimal.Decimal) float64 {
	return core.Percentage(categoryTotal, c.state.Get().OverallTotal)
}

// Percentages returns every category's share in breakdown order.
func (c *DashboardController) Percentages() []core.CategoryShare {
	return c.state.Get().Summary().Shares()
}

func (c *DashboardController) ClearError() {
	c.state.Update(func(st DashboardState) DashboardState {
		st.Error = ""
		return st
	})
}

func (c *DashboardController) State() DashboardState { return c.state.Get() }

func (c *DashboardController) Subscribe() (<-chan DashboardState, func()) { return c.state.Subscribe() }

func (c *DashboardController) Wait() { c.scope.Wait() }

func (c *DashboardController) Close() { c.scope.Close() }
