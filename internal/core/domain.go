// Package core holds the expense domain types, results and input validation.
package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MaxDescriptionLength is the longest description the API accepts, in characters.
	MaxDescriptionLength = 500
	// MinPasswordLength is the shortest password accepted before calling the API.
	MinPasswordLength = 6
)

type (
	// Expense is a server-owned expense record as held by the client.
	Expense struct {
		ID          string // empty until the server assigns one
		Amount      decimal.Decimal
		Description string
		Date        time.Time
		Category    Category
		UserID      string
		CreatedAt   *time.Time
		UpdatedAt   *time.Time
	}

	// ExpenseInput carries the fields needed to create an expense.
	ExpenseInput struct {
		Amount      decimal.Decimal
		Description string
		Date        time.Time
		Category    Category
	}

	// ExpenseUpdate is a partial update; nil fields are left untouched by the server.
	ExpenseUpdate struct {
		Amount      *decimal.Decimal
		Description *string
		Date        *time.Time
		Category    *Category
	}

	// ExpenseFilter narrows a listing. Zero fields are not sent.
	ExpenseFilter struct {
		Category  Category
		StartDate time.Time
		EndDate   time.Time
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidDate        = errors.New("invalid date")
	ErrIncompleteSession  = errors.New("incomplete session")
)

// IsNew reports whether the expense has not been stored by the server yet.
func (e Expense) IsNew() bool {
	return e.ID == ""
}

// IsEmpty reports whether the update carries no field at all.
func (u ExpenseUpdate) IsEmpty() bool {
	return u.Amount == nil && u.Description == nil && u.Date == nil && u.Category == nil
}

// RemoveExpense returns a copy of list without the expense whose ID matches id.
func RemoveExpense(list []Expense, id string) []Expense {
	out := make([]Expense, 0, len(list))
	for _, e := range list {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func descriptionLength(s string) int {
	return len([]rune(s))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
