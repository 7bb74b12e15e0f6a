package core

// ChangeType names the mutation that produced an ExpenseChange.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ExpenseChange describes a mutation the server has confirmed.
type ExpenseChange struct {
	Type      ChangeType
	ExpenseID string
	UserID    string
	// Expense is the server's copy after the change; nil for deletions.
	Expense *Expense
}
