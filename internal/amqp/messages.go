package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"spese-client/internal/core"
)

// ExpenseEventMessage announces that an expense changed on the server.
// Consumers fetch the expense from the API if they need more than the summary fields.
type ExpenseEventMessage struct {
	EventID   string           `json:"event_id"`
	Type      string           `json:"type"`
	ExpenseID string           `json:"expense_id"`
	UserID    string           `json:"user_id"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Category  string           `json:"category,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewExpenseEventMessage builds a message for change with a fresh event id.
func NewExpenseEventMessage(change core.ExpenseChange) *ExpenseEventMessage {
	msg := &ExpenseEventMessage{
		EventID:   uuid.NewString(),
		Type:      string(change.Type),
		ExpenseID: change.ExpenseID,
		UserID:    change.UserID,
		Timestamp: time.Now().UTC(),
	}
	if change.Expense != nil {
		amount := change.Expense.Amount
		msg.Amount = &amount
		msg.Category = change.Expense.Category.String()
	}
	return msg
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
