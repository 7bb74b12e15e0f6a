package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"spese-client/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a Store backed by a single SQLite table.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger

	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens (or creates) the database at dbPath and applies migrations.
func NewSQLiteStore(dbPath string, logger *log.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = log.Nop()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows one writer; a single connection keeps group writes serialized.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Debug("Opened SQLite store", "db_path", dbPath)

	return &SQLiteStore{
		db:     db,
		logger: logger.WithComponent(log.ComponentStorage),
	}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, namespace string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM kv WHERE namespace = ?`, namespace)
	if err != nil {
		return nil, fmt.Errorf("query namespace %s: %w", namespace, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan namespace %s: %w", namespace, err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate namespace %s: %w", namespace, err)
	}
	return out, nil
}

// PutAll implements Store.
func (s *SQLiteStore) PutAll(ctx context.Context, namespace string, values map[string]string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO kv (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for k, v := range values {
		if _, err := stmt.ExecContext(ctx, namespace, k, v); err != nil {
			return fmt.Errorf("upsert %s/%s: %w", namespace, k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Debug("Stored namespace", "namespace", namespace, "keys", len(values))
	return nil
}

// DeleteAll implements Store.
func (s *SQLiteStore) DeleteAll(ctx context.Context, namespace string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE namespace = ?`, namespace)
	if err != nil {
		return fmt.Errorf("delete namespace %s: %w", namespace, err)
	}
	n, _ := res.RowsAffected()
	s.logger.Debug("Cleared namespace", "namespace", namespace, "keys", n)
	return nil
}

// Close releases the database handle. Further calls return ErrClosed.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
