package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"spese-client/internal/core"
)

// Credentials is the body of both sign-up and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	IDToken string `json:"id_token"`
}

// Session converts the response into the client's session.
func (a AuthResponse) Session() core.Session {
	return core.Session{UserID: a.UID, Email: a.Email, Token: a.IDToken}
}

// Expense is the wire form of an expense. Dates stay strings until ToCore
// because the server has been seen returning more than one layout.
type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	UserID      string          `json:"user_id"`
	CreatedAt   *string         `json:"created_at,omitempty"`
	UpdatedAt   *string         `json:"updated_at,omitempty"`
}

// ToCore validates and converts the wire expense.
func (e Expense) ToCore() (core.Expense, error) {
	date, err := core.ParseTimestamp(e.Date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("expense %s: date %q: %w", e.ID, e.Date, err)
	}
	out := core.Expense{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        date,
		Category:    core.NormalizeCategory(e.Category),
		UserID:      e.UserID,
	}
	out.CreatedAt = optionalTimestamp(e.CreatedAt)
	out.UpdatedAt = optionalTimestamp(e.UpdatedAt)
	return out, nil
}

func optionalTimestamp(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := core.ParseTimestamp(*s)
	if err != nil {
		return nil
	}
	return &t
}

// ExpensesToCore converts a listing, failing on the first malformed item.
func ExpensesToCore(in []Expense) ([]core.Expense, error) {
	out := make([]core.Expense, 0, len(in))
	for _, e := range in {
		c, err := e.ToCore()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

type ExpenseCreateRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	UserID      string  `json:"user_id"`
}

// NewExpenseCreateRequest builds the request body for in on behalf of userID.
func NewExpenseCreateRequest(in core.ExpenseInput, userID string) ExpenseCreateRequest {
	return ExpenseCreateRequest{
		Amount:      in.Amount.InexactFloat64(),
		Description: in.Description,
		Date:        core.FormatTimestamp(in.Date),
		Category:    in.Category.String(),
		UserID:      userID,
	}
}

// ExpenseUpdateRequest carries only the fields being changed.
type ExpenseUpdateRequest struct {
	Amount      *float64 `json:"amount,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

func NewExpenseUpdateRequest(u core.ExpenseUpdate) ExpenseUpdateRequest {
	var req ExpenseUpdateRequest
	if u.Amount != nil {
		f := u.Amount.InexactFloat64()
		req.Amount = &f
	}
	if u.Description != nil {
		d := *u.Description
		req.Description = &d
	}
	if u.Date != nil {
		s := core.FormatTimestamp(*u.Date)
		req.Date = &s
	}
	if u.Category != nil {
		c := u.Category.String()
		req.Category = &c
	}
	return req
}

// ListParams are the optional listing filters. Empty values are not sent.
type ListParams struct {
	Category  string
	StartDate string
	EndDate   string
}

// ListParamsFromFilter renders f in the formats the server compares against.
func ListParamsFromFilter(f core.ExpenseFilter) ListParams {
	return ListParams{
		Category:  string(f.Category),
		StartDate: core.FormatDate(f.StartDate),
		EndDate:   core.FormatDate(f.EndDate),
	}
}

// APIResponse is the generic envelope returned by delete.
type APIResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type CategorySummary struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int             `json:"count"`
}

type DashboardSummary struct {
	OverallTotal decimal.Decimal   `json:"overall_total"`
	TotalCount   int               `json:"total_count"`
	PerCategory  []CategorySummary `json:"per_category"`
}

func (d DashboardSummary) ToCore() core.DashboardSummary {
	out := core.DashboardSummary{
		OverallTotal: d.OverallTotal,
		TotalCount:   d.TotalCount,
		PerCategory:  make([]core.CategorySummary, 0, len(d.PerCategory)),
	}
	for _, c := range d.PerCategory {
		out.PerCategory = append(out.PerCategory, core.CategorySummary{
			Category:    core.NormalizeCategory(c.Category),
			TotalAmount: c.TotalAmount,
			Count:       c.Count,
		})
	}
	return out
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
