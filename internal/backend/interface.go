package backend

import (
	"context"

	"spese-client/internal/core"
	"spese-client/internal/storage"
)

// Notifier receives expense changes confirmed by the server.
type Notifier interface {
	NotifyExpenseChanged(ctx context.Context, change core.ExpenseChange) error
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult holds the local resources the client runs on.
// Notifier is nil when no broker is configured.
type BackendResult struct {
	Store    storage.Store
	Notifier Notifier
	Cleanup  CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Optional change notifications
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType selects where the session is kept.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
