package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"spese-client/internal/api"
	"spese-client/internal/core"
	"spese-client/internal/gateway"
	"spese-client/internal/gateway/gatewaytest"
)

type staticIdentity string

func (s staticIdentity) UserID() string { return string(s) }

func threeExpenses() *gatewaytest.FakeAPI {
	return &gatewaytest.FakeAPI{Expenses: []api.Expense{
		gatewaytest.Expense("1", "u1", "10", "Food", "2024-01-03T10:00:00"),
		gatewaytest.Expense("2", "u1", "20", "Transport", "2024-01-02T10:00:00"),
		gatewaytest.Expense("3", "u1", "30", "Food", "2024-01-01T10:00:00"),
	}}
}

func expenseGateway(fake *gatewaytest.FakeAPI, user string) *gateway.ExpenseGateway {
	return gateway.NewExpenseGateway(fake, staticIdentity(user), nil, nil)
}

// waitFor polls sub until cond holds or a second passes.
func waitFor[T any](t *testing.T, sub <-chan T, cond func(T) bool) T {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case v := <-sub:
			if cond(v) {
				return v
			}
		case <-deadline:
			t.Fatal("condition not reached in time")
			var zero T
			return zero
		}
	}
}

// pendingService answers List and DashboardSummary calls only when the
// test releases them.
type pendingService struct {
	mu        sync.Mutex
	lists     map[core.Category][]chan core.Result[[]core.Expense]
	summaries []chan core.Result[core.DashboardSummary]
	started   chan struct{}
}

func newPendingService() *pendingService {
	return &pendingService{
		lists:   make(map[core.Category][]chan core.Result[[]core.Expense]),
		started: make(chan struct{}, 16),
	}
}

func (p *pendingService) List(ctx context.Context, f core.ExpenseFilter) core.Result[[]core.Expense] {
	ch := make(chan core.Result[[]core.Expense], 1)
	p.mu.Lock()
	p.lists[f.Category] = append(p.lists[f.Category], ch)
	p.mu.Unlock()
	p.started <- struct{}{}
	select {
	case r := <-ch:
		return r
	case <-ctx.Done():
		return core.Failure[[]core.Expense](ctx.Err().Error(), ctx.Err())
	}
}

func (p *pendingService) DashboardSummary(ctx context.Context) core.Result[core.DashboardSummary] {
	ch := make(chan core.Result[core.DashboardSummary], 1)
	p.mu.Lock()
	p.summaries = append(p.summaries, ch)
	p.mu.Unlock()
	p.started <- struct{}{}
	select {
	case r := <-ch:
		return r
	case <-ctx.Done():
		return core.Failure[core.DashboardSummary](ctx.Err().Error(), ctx.Err())
	}
}

// list returns the newest pending call for category; calls are keyed by
// filter because goroutines may start in any order.
func (p *pendingService) list(category core.Category) chan core.Result[[]core.Expense] {
	p.mu.Lock()
	defer p.mu.Unlock()
	calls := p.lists[category]
	return calls[len(calls)-1]
}

func (p *pendingService) listCalls(category core.Category) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.lists[category])
}

// listCall returns the i-th call made for category.
func (p *pendingService) listCall(category core.Category, i int) chan core.Result[[]core.Expense] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lists[category][i]
}

func (p *pendingService) summary(i int) chan core.Result[core.DashboardSummary] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summaries[i]
}

func (p *pendingService) awaitStarted(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-p.started:
		case <-time.After(time.Second):
			t.Fatalf("only %d of %d calls started", i, n)
		}
	}
}

func (p *pendingService) Create(context.Context, core.ExpenseInput) core.Result[core.Expense] {
	return core.Failure[core.Expense]("not scripted", nil)
}

func (p *pendingService) Get(context.Context, string) core.Result[core.Expense] {
	return core.Failure[core.Expense]("not scripted", nil)
}

func (p *pendingService) Update(context.Context, string, core.ExpenseUpdate) core.Result[core.Expense] {
	return core.Failure[core.Expense]("not scripted", nil)
}

func (p *pendingService) Delete(context.Context, string) core.Result[bool] {
	return core.Failure[bool]("not scripted", nil)
}
