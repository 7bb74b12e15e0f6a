// Package gatewaytest provides an in-memory stand-in for the REST API so
// gateways and controllers can be exercised without a server.
package gatewaytest

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"spese-client/internal/api"
)

// FakeAPI implements gateway.AuthAPI and gateway.ExpenseAPI. Set Err to make
// every call fail at the transport level, or Status/ErrorBody to make them
// return a non-successful response.
type FakeAPI struct {
	mu sync.Mutex

	Auth      api.AuthResponse
	Expenses  []api.Expense
	Summary   *api.DashboardSummary
	Err       error
	Status    int
	ErrorBody string
	// Block, when set, is waited on before each call returns.
	Block chan struct{}

	calls  map[string]int
	nextID int
	// LastCreate and LastUpdate record the most recent request bodies.
	LastCreate api.ExpenseCreateRequest
	LastUpdate api.ExpenseUpdateRequest
	LastParams api.ListParams
}

// Calls returns how many times method was invoked.
func (f *FakeAPI) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// TotalCalls returns the number of calls across all methods.
func (f *FakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// SetErr changes the transport error returned by later calls.
func (f *FakeAPI) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Err = err
}

func (f *FakeAPI) begin(ctx context.Context, method string) error {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
	block := f.Block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Err
}

func failed[T any](f *FakeAPI) (*api.Response[T], bool) {
	if f.Status == 0 || (f.Status >= 200 && f.Status < 300) {
		return nil, false
	}
	return &api.Response[T]{
		StatusCode: f.Status,
		Status:     http.StatusText(f.Status),
		ErrorBody:  []byte(f.ErrorBody),
	}, true
}

func ok[T any](body T) *api.Response[T] {
	return &api.Response[T]{StatusCode: http.StatusOK, Status: "OK", Body: &body}
}

func (f *FakeAPI) SignUp(ctx context.Context, _ api.Credentials) (*api.Response[api.AuthResponse], error) {
	return f.auth(ctx, "SignUp")
}

func (f *FakeAPI) Login(ctx context.Context, _ api.Credentials) (*api.Response[api.AuthResponse], error) {
	return f.auth(ctx, "Login")
}

func (f *FakeAPI) auth(ctx context.Context, method string) (*api.Response[api.AuthResponse], error) {
	if err := f.begin(ctx, method); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, bad := failed[api.AuthResponse](f); bad {
		return r, nil
	}
	return ok(f.Auth), nil
}

func (f *FakeAPI) CreateExpense(ctx context.Context, req api.ExpenseCreateRequest) (*api.Response[api.Expense], error) {
	if err := f.begin(ctx, "CreateExpense"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCreate = req
	if r, bad := failed[api.Expense](f); bad {
		return r, nil
	}
	f.nextID++
	e := api.Expense{
		ID:          fmt.Sprintf("new-%d", f.nextID),
		Amount:      decimal.NewFromFloat(req.Amount),
		Description: req.Description,
		Date:        req.Date,
		Category:    req.Category,
		UserID:      req.UserID,
	}
	f.Expenses = append(f.Expenses, e)
	return ok(e), nil
}

func (f *FakeAPI) GetExpense(ctx context.Context, id, userID string) (*api.Response[api.Expense], error) {
	if err := f.begin(ctx, "GetExpense"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, bad := failed[api.Expense](f); bad {
		return r, nil
	}
	for _, e := range f.Expenses {
		if e.ID == id && e.UserID == userID {
			return ok(e), nil
		}
	}
	return notFound[api.Expense](), nil
}

func (f *FakeAPI) UpdateExpense(ctx context.Context, id, userID string, req api.ExpenseUpdateRequest) (*api.Response[api.Expense], error) {
	if err := f.begin(ctx, "UpdateExpense"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUpdate = req
	if r, bad := failed[api.Expense](f); bad {
		return r, nil
	}
	for i, e := range f.Expenses {
		if e.ID != id || e.UserID != userID {
			continue
		}
		if req.Amount != nil {
			e.Amount = decimal.NewFromFloat(*req.Amount)
		}
		if req.Description != nil {
			e.Description = *req.Description
		}
		if req.Date != nil {
			e.Date = *req.Date
		}
		if req.Category != nil {
			e.Category = *req.Category
		}
		f.Expenses[i] = e
		return ok(e), nil
	}
	return notFound[api.Expense](), nil
}

func (f *FakeAPI) DeleteExpense(ctx context.Context, id, userID string) (*api.Response[api.APIResponse], error) {
	if err := f.begin(ctx, "DeleteExpense"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, bad := failed[api.APIResponse](f); bad {
		return r, nil
	}
	for i, e := range f.Expenses {
		if e.ID == id && e.UserID == userID {
			f.Expenses = append(f.Expenses[:i:i], f.Expenses[i+1:]...)
			return ok(api.APIResponse{Success: true, Message: "Expense deleted successfully"}), nil
		}
	}
	return notFound[api.APIResponse](), nil
}

func (f *FakeAPI) ListExpenses(ctx context.Context, userID string, params api.ListParams) (*api.Response[[]api.Expense], error) {
	if err := f.begin(ctx, "ListExpenses"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastParams = params
	if r, bad := failed[[]api.Expense](f); bad {
		return r, nil
	}
	out := make([]api.Expense, 0, len(f.Expenses))
	for _, e := range f.Expenses {
		if e.UserID != userID {
			continue
		}
		if params.Category != "" && e.Category != params.Category {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return ok(out), nil
}

func (f *FakeAPI) DashboardSummary(ctx context.Context, userID string) (*api.Response[api.DashboardSummary], error) {
	if err := f.begin(ctx, "DashboardSummary"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, bad := failed[api.DashboardSummary](f); bad {
		return r, nil
	}
	if f.Summary != nil {
		return ok(*f.Summary), nil
	}

	var (
		sum     api.DashboardSummary
		byCat   = map[string]*api.CategorySummary{}
		ordered []string
	)
	for _, e := range f.Expenses {
		if e.UserID != userID {
			continue
		}
		sum.OverallTotal = sum.OverallTotal.Add(e.Amount)
		sum.TotalCount++
		c, seen := byCat[e.Category]
		if !seen {
			c = &api.CategorySummary{Category: e.Category}
			byCat[e.Category] = c
			ordered = append(ordered, e.Category)
		}
		c.TotalAmount = c.TotalAmount.Add(e.Amount)
		c.Count++
	}
	for _, name := range ordered {
		sum.PerCategory = append(sum.PerCategory, *byCat[name])
	}
	sort.SliceStable(sum.PerCategory, func(i, j int) bool {
		return sum.PerCategory[i].TotalAmount.GreaterThan(sum.PerCategory[j].TotalAmount)
	})
	return ok(sum), nil
}

func notFound[T any]() *api.Response[T] {
	return &api.Response[T]{
		StatusCode: http.StatusNotFound,
		Status:     "Not Found",
		ErrorBody:  []byte(`{"detail":"Expense not found"}`),
	}
}

// Expense builds a wire expense for seeding the fake.
func Expense(id, userID, amount, category, date string) api.Expense {
	return api.Expense{
		ID:          id,
		Amount:      decimal.RequireFromString(amount),
		Description: "expense " + id,
		Date:        date,
		Category:    category,
		UserID:      userID,
	}
}
