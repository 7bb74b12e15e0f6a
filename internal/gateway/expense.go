package gateway

import (
	"context"

	"spese-client/internal/api"
	"spese-client/internal/core"
	"spese-client/internal/log"
)

// ExpenseGateway performs expense and dashboard calls on behalf of the
// signed-in user. Each call is exactly one round trip.
type ExpenseGateway struct {
	api      ExpenseAPI
	identity Identity
	notifier Notifier
	logger   *log.Logger
}

// NewExpenseGateway wires the gateway. notifier may be nil.
func NewExpenseGateway(a ExpenseAPI, identity Identity, notifier Notifier, logger *log.Logger) *ExpenseGateway {
	if logger == nil {
		logger = log.Nop()
	}
	return &ExpenseGateway{
		api:      a,
		identity: identity,
		notifier: notifier,
		logger:   logger.WithComponent(log.ComponentExpense),
	}
}

func (g *ExpenseGateway) Create(ctx context.Context, in core.ExpenseInput) core.Result[core.Expense] {
	userID := g.identity.UserID()
	if userID == "" {
		return core.Failure[core.Expense](msgNotAuthenticated, core.ErrNotAuthenticated)
	}

	resp, err := g.api.CreateExpense(ctx, api.NewExpenseCreateRequest(in, userID))
	res := g.expenseResult(ctx, log.OpCreate, "create expense", resp, err)
	g.notify(ctx, core.ChangeCreated, userID, res)
	return res
}

func (g *ExpenseGateway) Get(ctx context.Context, id string) core.Result[core.Expense] {
	userID := g.identity.UserID()
	if userID == "" {
		return core.Failure[core.Expense](msgNotAuthenticated, core.ErrNotAuthenticated)
	}

	resp, err := g.api.GetExpense(ctx, id, userID)
	return g.expenseResult(ctx, log.OpRead, "get expense", resp, err)
}

func (g *ExpenseGateway) Update(ctx context.Context, id string, u core.ExpenseUpdate) core.Result[core.Expense] {
	userID := g.identity.UserID()
	if userID == "" {
		return core.Failure[core.Expense](msgNotAuthenticated, core.ErrNotAuthenticated)
	}

	resp, err := g.api.UpdateExpense(ctx, id, userID, api.NewExpenseUpdateRequest(u))
	res := g.expenseResult(ctx, log.OpUpdate, "update expense", resp, err)
	g.notify(ctx, core.ChangeUpdated, userID, res)
	return res
}

// Delete reports Success(true) only when the server accepted the deletion.
func (g *ExpenseGateway) Delete(ctx context.Context, id string) core.Result[bool] {
	userID := g.identity.UserID()
	if userID == "" {
		return core.Failure[bool](msgNotAuthenticated, core.ErrNotAuthenticated)
	}

	resp, err := g.api.DeleteExpense(ctx, id, userID)
	if err != nil {
		g.warn(ctx, log.OpDelete, err)
		return core.Failure[bool]("Failed to delete expense: "+err.Error(), err)
	}
	if !resp.IsSuccessful() {
		reason := resp.Status
		if detail, ok := resp.Detail(); ok {
			reason = detail
		}
		g.rejected(ctx, log.OpDelete, resp.StatusCode, reason)
		return core.Failure[bool]("Failed to delete expense: "+reason, nil)
	}

	g.logger.DebugContext(ctx, "Deleted expense", log.FieldExpenseID, id)
	if g.notifier != nil {
		g.publish(ctx, core.ExpenseChange{Type: core.ChangeDeleted, ExpenseID: id, UserID: userID})
	}
	return core.Success(true)
}

// List returns the user's expenses matching filter.
func (g *ExpenseGateway) List(ctx context.Context, filter core.ExpenseFilter) core.Result[[]core.Expense] {
	userID := g.identity.UserID()
	if userID == "" {
		return core.Failure[[]core.Expense](msgNotAuthenticated, core.ErrNotAuthenticated)
	}

	resp, err := g.api.ListExpenses(ctx, userID, api.ListParamsFromFilter(filter))
	if err != nil {
		g.warn(ctx, log.OpList, err)
		return core.Failure[[]core.Expense]("Failed to list expenses: "+err.Error(), err)
	}
	if !resp.IsSuccessful() {
		msg := errorMessage(resp)
		g.rejected(ctx, log.OpList, resp.StatusCode, msg)
		return core.Failure[[]core.Expense](msg, nil)
	}
	if resp.Body == nil {
		return core.Failure[[]core.Expense](msgEmptyResponse, nil)
	}

	items, err := api.ExpensesToCore(*resp.Body)
	if err != nil {
		g.warn(ctx, log.OpList, err)
		return core.Failure[[]core.Expense]("Failed to list expenses: "+err.Error(), err)
	}
	g.logger.DebugContext(ctx, "Listed expenses", log.FieldCount, len(items), log.FieldCategory, string(filter.Category))
	return core.Success(items)
}

func (g *ExpenseGateway) DashboardSummary(ctx context.Context) core.Result[core.DashboardSummary] {
	userID := g.identity.UserID()
	if userID == "" {
		return core.Failure[core.DashboardSummary](msgNotAuthenticated, core.ErrNotAuthenticated)
	}

	resp, err := g.api.DashboardSummary(ctx, userID)
	if err != nil {
		g.warn(ctx, log.OpSummary, err)
		return core.Failure[core.DashboardSummary]("Failed to get dashboard summary: "+err.Error(), err)
	}
	if !resp.IsSuccessful() {
		msg := errorMessage(resp)
		g.rejected(ctx, log.OpSummary, resp.StatusCode, msg)
		return core.Failure[core.DashboardSummary](msg, nil)
	}
	if resp.Body == nil {
		return core.Failure[core.DashboardSummary](msgEmptyResponse, nil)
	}
	return core.Success(resp.Body.ToCore())
}

// expenseResult maps the outcome of a single-expense call.
func (g *ExpenseGateway) expenseResult(ctx context.Context, op, action string, resp *api.Response[api.Expense], err error) core.Result[core.Expense] {
	if err != nil {
		g.warn(ctx, op, err)
		return core.Failure[core.Expense]("Failed to "+action+": "+err.Error(), err)
	}
	if !resp.IsSuccessful() {
		msg := errorMessage(resp)
		g.rejected(ctx, op, resp.StatusCode, msg)
		return core.Failure[core.Expense](msg, nil)
	}
	if resp.Body == nil {
		return core.Failure[core.Expense](msgEmptyResponse, nil)
	}

	e, err := resp.Body.ToCore()
	if err != nil {
		g.warn(ctx, op, err)
		return core.Failure[core.Expense]("Failed to "+action+": "+err.Error(), err)
	}
	g.logger.DebugContext(ctx, "Expense call succeeded", log.NewFields().
		WithOperation(op).
		WithExpense(e.ID, e.Description, core.FormatAmount(e.Amount), e.Category.String()).
		ToSlice()...)
	return core.Success(e)
}

func (g *ExpenseGateway) notify(ctx context.Context, kind core.ChangeType, userID string, res core.Result[core.Expense]) {
	if g.notifier == nil {
		return
	}
	e, ok := res.Value()
	if !ok {
		return
	}
	g.publish(ctx, core.ExpenseChange{Type: kind, ExpenseID: e.ID, UserID: userID, Expense: &e})
}

// publish never affects the caller's result.
func (g *ExpenseGateway) publish(ctx context.Context, change core.ExpenseChange) {
	if err := g.notifier.NotifyExpenseChanged(ctx, change); err != nil {
		g.logger.WarnContext(ctx, "Failed to publish expense change",
			log.FieldOperation, log.OpPublish,
			log.FieldExpenseID, change.ExpenseID,
			log.FieldError, err)
	}
}

func (g *ExpenseGateway) warn(ctx context.Context, op string, err error) {
	g.logger.WarnContext(ctx, "Expense request failed", log.FieldOperation, op, log.FieldError, err)
}

func (g *ExpenseGateway) rejected(ctx context.Context, op string, status int, msg string) {
	g.logger.WarnContext(ctx, "Expense request rejected",
		log.FieldOperation, op,
		log.FieldStatusCode, status,
		log.FieldError, msg)
}
