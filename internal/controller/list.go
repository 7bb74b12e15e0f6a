package controller

import (
	"context"
	"sync"

	"spese-client/internal/core"
	"spese-client/internal/log"
)

type ListState struct {
	Expenses     []core.Expense
	IsLoading    bool
	IsRefreshing bool
	Error        string
	// SelectedCategory is empty when no filter is applied.
	SelectedCategory core.Category
}

// ListController shows the user's expenses, optionally filtered by category.
type ListController struct {
	svc    ExpenseService
	state  *State[ListState]
	scope  *Scope
	gen    Generation
	logger *log.Logger

	// requested is the filter of the newest Load, set before its call is issued.
	mu        sync.Mutex
	requested core.Category
}

// NewListController starts loading category (empty for all) right away.
func NewListController(parent context.Context, svc ExpenseService, category core.Category, logger *log.Logger) *ListController {
	if logger == nil {
		logger = log.Nop()
	}
	c := &ListController{
		svc:    svc,
		state:  NewState(ListState{}),
		scope:  NewScope(parent),
		logger: logger.WithComponent(log.ComponentController).With(log.FieldController, "list"),
	}
	c.Load(category)
	return c
}

// Load fetches the expenses of category and makes it the selected filter.
func (c *ListController) Load(category core.Category) {
	c.fetch(category, false)
}

// Refresh reloads the most recently requested filter without the full
// loading indicator, even when that filter has not loaded yet.
func (c *ListController) Refresh() {
	c.mu.Lock()
	category := c.requested
	c.mu.Unlock()
	c.fetch(category, true)
}

// FilterByCategory switches the filter and reloads.
func (c *ListController) FilterByCategory(category core.Category) {
	c.Load(category)
}

func (c *ListController) fetch(category core.Category, refresh bool) {
	if !refresh {
		c.mu.Lock()
		c.requested = category
		c.mu.Unlock()
	}
	n := c.gen.Next()
	commit(c.scope, c.state, nil, 0, func(st ListState) ListState {
		if refresh {
			st.IsRefreshing = true
		} else {
			st.IsLoading = true
		}
		st.Error = ""
		return st
	})

	c.scope.Go(func(ctx context.Context) {
		res := c.svc.List(ctx, core.ExpenseFilter{Category: category})
		applied := commit(c.scope, c.state, &c.gen, n, func(st ListState) ListState {
			st.IsLoading = false
			st.IsRefreshing = false
			if items, ok := res.Value(); ok {
				st.Expenses = items
				st.Error = ""
				st.SelectedCategory = category
			} else {
				st.Error = res.Message()
			}
			return st
		})
		if !applied {
			c.logger.DebugContext(ctx, "Discarded stale list response", log.FieldGeneration, n)
		}
	})
}

// Delete removes the expense on the server and then from the local list.
// The list is not fetched again. The removal is not generation-guarded: a
// load that resolves later replaces the list with what the server returned.
func (c *ListController) Delete(id string) {
	c.scope.Go(func(ctx context.Context) {
		res := c.svc.Delete(ctx, id)
		commit(c.scope, c.state, nil, 0, func(st ListState) ListState {
			if res.IsSuccess() {
				st.Expenses = core.RemoveExpense(st.Expenses, id)
			} else {
				st.Error = res.Message()
			}
			return st
		})
	})
}

// ClearError resets only the error message.
func (c *ListController) ClearError() {
	c.state.Update(func(st ListState) ListState {
		st.Error = ""
		return st
	})
}

func (c *ListController) State() ListState { return c.state.Get() }

func (c *ListController) Subscribe() (<-chan ListState, func()) { return c.state.Subscribe() }

func (c *ListController) Wait() { c.scope.Wait() }

func (c *ListController) Close() { c.scope.Close() }
