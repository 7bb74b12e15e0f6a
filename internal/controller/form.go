package controller

import (
	"context"
	"time"

	"spese-client/internal/core"
	"spese-client/internal/log"
)

const msgUserNotAuthenticated = "User not authenticated"

type FormState struct {
	IsEditMode       bool
	ExpenseID        string
	Amount           string
	Description      string
	Date             time.Time
	Category         core.Category
	IsLoading        bool
	IsSaving         bool
	Error            string
	ValidationErrors core.FieldErrors
	IsSaved          bool
}

// FormController edits a single expense. It is in edit mode when built
// with an expense id and in create mode otherwise.
type FormController struct {
	svc      ExpenseService
	identity Identity
	state    *State[FormState]
	scope    *Scope
	loadGen  Generation
	saveGen  Generation
	logger   *log.Logger
}

// FormOption customizes a FormController.
type FormOption func(*formOptions)

type formOptions struct {
	now func() time.Time
}

// WithClock sets the source of the default date for new expenses.
func WithClock(now func() time.Time) FormOption {
	return func(o *formOptions) { o.now = now }
}

// NewFormController builds the form. A non-empty expenseID selects edit
// mode and starts loading that expense.
func NewFormController(parent context.Context, svc ExpenseService, identity Identity, expenseID string, logger *log.Logger, opts ...FormOption) *FormController {
	o := formOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = log.Nop()
	}

	c := &FormController{
		svc:      svc,
		identity: identity,
		state: NewState(FormState{
			IsEditMode:       expenseID != "",
			ExpenseID:        expenseID,
			Date:             o.now().Truncate(time.Second),
			Category:         core.CategoryFood,
			ValidationErrors: core.FieldErrors{},
		}),
		scope:  NewScope(parent),
		logger: logger.WithComponent(log.ComponentController).With(log.FieldController, "form"),
	}
	if expenseID != "" {
		c.load(expenseID)
	}
	return c
}

func (c *FormController) load(id string) {
	n := c.loadGen.Next()
	commit(c.scope, c.state, nil, 0, func(st FormState) FormState {
		st.IsLoading = true
		st.Error = ""
		return st
	})

	c.scope.Go(func(ctx context.Context) {
		res := c.svc.Get(ctx, id)
		commit(c.scope, c.state, &c.loadGen, n, func(st FormState) FormState {
			st.IsLoading = false
			if e, ok := res.Value(); ok {
				st.Amount = e.Amount.String()
				st.Description = e.Description
				st.Date = e.Date
				st.Category = e.Category
				st.Error = ""
			} else {
				st.Error = res.Message()
			}
			return st
		})
	})
}

// SetAmount updates the amount and drops its validation error.
func (c *FormController) SetAmount(amount string) {
	c.state.Update(func(st FormState) FormState {
		st.Amount = amount
		st.ValidationErrors = withoutField(st.ValidationErrors, core.FieldAmount)
		return st
	})
}

// SetDescription updates the description and drops its validation error.
func (c *FormController) SetDescription(description string) {
	c.state.Update(func(st FormState) FormState {
		st.Description = description
		st.ValidationErrors = withoutField(st.ValidationErrors, core.FieldDescription)
		return st
	})
}

func (c *FormController) SetDate(date time.Time) {
	c.state.Update(func(st FormState) FormState {
		st.Date = date
		return st
	})
}

func (c *FormController) SetCategory(category core.Category) {
	c.state.Update(func(st FormState) FormState {
		st.Category = category
		return st
	})
}

// Save validates every field and, when the form is clean and a user is
// signed in, creates or updates the expense.
func (c *FormController) Save() {
	snapshot := c.state.Get()
	errs := core.ValidateExpenseFields(snapshot.Amount, snapshot.Description)
	c.state.Update(func(st FormState) FormState {
		st.ValidationErrors = errs
		return st
	})
	if len(errs) > 0 {
		return
	}

	if c.identity.UserID() == "" {
		c.state.Update(func(st FormState) FormState {
			st.Error = msgUserNotAuthenticated
			return st
		})
		return
	}

	// validated above, cannot fail
	amount, _ := core.ParseAmount(snapshot.Amount)
	n := c.saveGen.Next()
	commit(c.scope, c.state, nil, 0, func(st FormState) FormState {
		st.IsSaving = true
		st.Error = ""
		return st
	})

	c.scope.Go(func(ctx context.Context) {
		var res core.Result[core.Expense]
		if snapshot.IsEditMode {
			res = c.svc.Update(ctx, snapshot.ExpenseID, core.ExpenseUpdate{
				Amount:      &amount,
				Description: &snapshot.Description,
				Date:        &snapshot.Date,
				Category:    &snapshot.Category,
			})
		} else {
			res = c.svc.Create(ctx, core.ExpenseInput{
				Amount:      amount,
				Description: snapshot.Description,
				Date:        snapshot.Date,
				Category:    snapshot.Category,
			})
		}

		commit(c.scope, c.state, &c.saveGen, n, func(st FormState) FormState {
			st.IsSaving = false
			if e, ok := res.Value(); ok {
				st.IsSaved = true
				st.Error = ""
				if !st.IsEditMode {
					st.ExpenseID = e.ID
				}
			} else {
				st.Error = res.Message()
			}
			return st
		})
		if res.IsError() {
			c.logger.DebugContext(ctx, "Save failed", log.FieldError, res.Message())
		}
	})
}

// ResetSaved acknowledges a completed save.
func (c *FormController) ResetSaved() {
	c.state.Update(func(st FormState) FormState {
		st.IsSaved = false
		return st
	})
}

func (c *FormController) ClearError() {
	c.state.Update(func(st FormState) FormState {
		st.Error = ""
		return st
	})
}

func (c *FormController) State() FormState { return c.state.Get() }

func (c *FormController) Subscribe() (<-chan FormState, func()) { return c.state.Subscribe() }

func (c *FormController) Wait() { c.scope.Wait() }

func (c *FormController) Close() { c.scope.Close() }

// withoutField returns a copy of errs without field so published states
// never share a map.
func withoutField(errs core.FieldErrors, field string) core.FieldErrors {
	out := make(core.FieldErrors, len(errs))
	for k, v := range errs {
		if k != field {
			out[k] = v
		}
	}
	return out
}
