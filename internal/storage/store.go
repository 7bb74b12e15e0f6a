// Package storage holds small string key/value groups that must survive
// process restarts, such as the signed-in session.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("storage closed")

// Store persists string values grouped by namespace. A group is always
// written or removed as a whole, so readers never see a partial write.
type Store interface {
	// Get returns every key in the namespace. A missing namespace yields an empty map.
	Get(ctx context.Context, namespace string) (map[string]string, error)
	// PutAll upserts all values into the namespace in a single transaction.
	PutAll(ctx context.Context, namespace string, values map[string]string) error
	// DeleteAll removes every key of the namespace.
	DeleteAll(ctx context.Context, namespace string) error
}
