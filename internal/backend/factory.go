package backend

import (
	"context"
	"errors"
	"fmt"

	"spese-client/internal/amqp"
	"spese-client/internal/log"
	"spese-client/internal/storage"
	"spese-client/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Nop()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(config)
	case MemoryBackend:
		result = f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	f.attachNotifier(ctx, config, result)
	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() *BackendResult {
	f.logger.Info("Initialized memory backend")
	return &BackendResult{Store: memory.New()}
}

// attachNotifier connects the optional publisher. A broker that cannot be
// reached is logged and skipped; the client keeps working without events.
func (f *DefaultFactory) attachNotifier(ctx context.Context, config Config, result *BackendResult) {
	if config.AMQPURL == "" {
		return
	}

	publisher, err := amqp.NewPublisher(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP publisher, continuing without events", "error", err)
		return
	}

	f.logger.InfoContext(ctx, "Initialized AMQP publisher",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	result.Notifier = publisher
	storeCleanup := result.Cleanup
	result.Cleanup = func() error {
		var errs []error
		if err := publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
		if storeCleanup != nil {
			if err := storeCleanup(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
