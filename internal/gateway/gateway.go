// Package gateway turns API exchanges into core.Result values. Nothing in
// this package returns a bare error to its callers.
package gateway

import (
	"context"

	"spese-client/internal/api"
	"spese-client/internal/core"
)

// AuthAPI is the part of api.Client used for authentication.
type AuthAPI interface {
	SignUp(ctx context.Context, creds api.Credentials) (*api.Response[api.AuthResponse], error)
	Login(ctx context.Context, creds api.Credentials) (*api.Response[api.AuthResponse], error)
}

// ExpenseAPI is the part of api.Client used for expenses and the dashboard.
type ExpenseAPI interface {
	CreateExpense(ctx context.Context, req api.ExpenseCreateRequest) (*api.Response[api.Expense], error)
	GetExpense(ctx context.Context, id, userID string) (*api.Response[api.Expense], error)
	UpdateExpense(ctx context.Context, id, userID string, req api.ExpenseUpdateRequest) (*api.Response[api.Expense], error)
	DeleteExpense(ctx context.Context, id, userID string) (*api.Response[api.APIResponse], error)
	ListExpenses(ctx context.Context, userID string, params api.ListParams) (*api.Response[[]api.Expense], error)
	DashboardSummary(ctx context.Context, userID string) (*api.Response[api.DashboardSummary], error)
}

// SessionStore is what the auth gateway needs from session.Store.
type SessionStore interface {
	Save(ctx context.Context, s core.Session) error
	Clear(ctx context.Context) error
	Current() *core.Session
	UserID() string
	IsSignedIn() bool
}

// Identity resolves the signed-in user; empty means nobody is.
type Identity interface {
	UserID() string
}

// Notifier is told about mutations the server confirmed.
type Notifier interface {
	NotifyExpenseChanged(ctx context.Context, change core.ExpenseChange) error
}

const (
	msgNotAuthenticated = "Not authenticated"
	msgEmptyResponse    = "Empty response from server"
	msgUnknownError     = "Unknown error"
	msgIncompleteAuth   = "Incomplete session in server response"
)

// errorMessage picks the most useful text out of a failed response:
// the detail field, then the raw body, then the reason phrase.
func errorMessage[T any](resp *api.Response[T]) string {
	if detail, ok := resp.Detail(); ok {
		return detail
	}
	if raw := resp.RawError(); raw != "" {
		return raw
	}
	return "Failed to parse error: " + resp.Status
}
