// Package controller holds per-screen view state and the asynchronous
// operations that change it. Entry points return at once; Wait joins the
// work they started.
package controller

import (
	"context"

	"spese-client/internal/core"
)

// AuthService is implemented by gateway.AuthGateway.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) core.Result[core.Session]
	SignUp(ctx context.Context, email, password string) core.Result[core.Session]
	SignOut(ctx context.Context) error
}

// SessionFeed is implemented by session.Store.
type SessionFeed interface {
	Subscribe() (<-chan *core.Session, func())
}

// ExpenseService is implemented by gateway.ExpenseGateway.
type ExpenseService interface {
	Create(ctx context.Context, in core.ExpenseInput) core.Result[core.Expense]
	Get(ctx context.Context, id string) core.Result[core.Expense]
	Update(ctx context.Context, id string, u core.ExpenseUpdate) core.Result[core.Expense]
	Delete(ctx context.Context, id string) core.Result[bool]
	List(ctx context.Context, filter core.ExpenseFilter) core.Result[[]core.Expense]
	DashboardSummary(ctx context.Context) core.Result[core.DashboardSummary]
}

// Identity resolves the signed-in user; empty means nobody is.
type Identity interface {
	UserID() string
}
