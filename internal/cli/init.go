// Package cli provides the bootstrap shared by the expensectl commands:
// environment loading, logger setup, configuration and component wiring.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"spese-client/internal/api"
	"spese-client/internal/backend"
	"spese-client/internal/config"
	"spese-client/internal/export"
	"spese-client/internal/gateway"
	"spese-client/internal/log"
	"spese-client/internal/session"
)

// ErrExportDisabled is returned by App.NewExporter when no spreadsheet is configured.
var ErrExportDisabled = errors.New("export disabled: GOOGLE_SPREADSHEET_ID is not set")

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the process logger at level and makes it the slog default.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig reads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// App holds the wired client components for one process.
type App struct {
	Config   *config.Config
	Logger   *log.Logger
	Sessions *session.Store
	API      *api.Client
	Auth     *gateway.AuthGateway
	Expenses *gateway.ExpenseGateway

	cleanup backend.CleanupFunc
}

// NewApp creates the session backend, restores any saved session and wires
// the gateways on top of a single API client.
func NewApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Nop()
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("backend config: %w", err)
	}

	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	sessions, err := session.Open(ctx, res.Store, logger)
	if err != nil {
		runCleanup(res.Cleanup, logger)
		return nil, fmt.Errorf("open session store: %w", err)
	}

	client, err := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Logger:  logger,
		Token:   sessions.Token,
	})
	if err != nil {
		runCleanup(res.Cleanup, logger)
		return nil, fmt.Errorf("create API client: %w", err)
	}

	var notifier gateway.Notifier
	if res.Notifier != nil {
		notifier = res.Notifier
	}

	logger.DebugContext(ctx, "Client initialized",
		log.FieldOperation, log.OpStartup,
		"api_base_url", cfg.APIBaseURL,
		"session_backend", cfg.SessionBackend,
		"signed_in", sessions.IsSignedIn())

	return &App{
		Config:   cfg,
		Logger:   logger,
		Sessions: sessions,
		API:      client,
		Auth:     gateway.NewAuthGateway(client, sessions, logger),
		Expenses: gateway.NewExpenseGateway(client, sessions, notifier, logger),
		cleanup:  res.Cleanup,
	}, nil
}

// NewExporter builds the Sheets exporter from the app configuration.
func (a *App) NewExporter(ctx context.Context) (*export.SheetsExporter, error) {
	if !a.Config.ExportEnabled() {
		return nil, ErrExportDisabled
	}
	return export.NewSheetsExporter(ctx, export.Config{
		SpreadsheetID:      a.Config.GoogleSpreadsheetID,
		SheetName:          a.Config.GoogleSheetName,
		ServiceAccountFile: a.Config.GoogleServiceAccountFile,
		ServiceAccountJSON: a.Config.GoogleServiceAccountJSON,
	}, a.Logger)
}

// Close releases the backend resources.
func (a *App) Close() error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}

func runCleanup(cleanup backend.CleanupFunc, logger *log.Logger) {
	if cleanup == nil {
		return
	}
	if err := cleanup(); err != nil {
		logger.Warn("Cleanup failed", log.FieldError, err)
	}
}
