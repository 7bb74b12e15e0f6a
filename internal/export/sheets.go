// Package export writes expense lists to external spreadsheets.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	gsheet "google.golang.org/api/sheets/v4"
	goption "google.golang.org/api/option"

	"spese-client/internal/core"
	"spese-client/internal/log"
)

// Header is the first row written by every export.
var Header = []any{"Date", "Description", "Amount", "Category", "ID"}

// Config selects the target spreadsheet and the service account used to reach it.
type Config struct {
	SpreadsheetID      string
	SheetName          string
	ServiceAccountFile string
	ServiceAccountJSON string
}

// Result describes what an export wrote.
type Result struct {
	Range string
	Rows  int
}

// appender is the single Sheets call the exporter needs.
type appender interface {
	Append(ctx context.Context, spreadsheetID, rng string, rows [][]any) (string, error)
}

type sheetsAppender struct {
	svc *gsheet.Service
}

func (a sheetsAppender) Append(ctx context.Context, spreadsheetID, rng string, rows [][]any) (string, error) {
	resp, err := a.svc.Spreadsheets.Values.Append(spreadsheetID, rng, &gsheet.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	if resp.Updates != nil {
		return resp.Updates.UpdatedRange, nil
	}
	return rng, nil
}

// SheetsExporter appends expenses to a Google Sheet.
type SheetsExporter struct {
	values        appender
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// NewSheetsExporter builds a Sheets service from service account credentials.
// Inline JSON wins over the credentials file.
func NewSheetsExporter(ctx context.Context, cfg Config, logger *log.Logger) (*SheetsExporter, error) {
	if logger == nil {
		logger = log.Nop()
	}
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	creds, err := credentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return newSheetsExporter(sheetsAppender{svc: svc}, cfg, logger), nil
}

func newSheetsExporter(values appender, cfg Config, logger *log.Logger) *SheetsExporter {
	sheet := cfg.SheetName
	if sheet == "" {
		sheet = "Expenses"
	}
	return &SheetsExporter{
		values:        values,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheet,
		logger:        logger.WithComponent(log.ComponentExport),
	}
}

func credentials(cfg Config) ([]byte, error) {
	inline := strings.TrimSpace(cfg.ServiceAccountJSON)
	file := strings.TrimSpace(cfg.ServiceAccountFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		return []byte(inline), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// Export appends a header row followed by one row per expense.
func (e *SheetsExporter) Export(ctx context.Context, expenses []core.Expense) (Result, error) {
	rows := BuildRows(expenses)
	rng := fmt.Sprintf("%s!A:E", e.sheetName)

	updated, err := e.values.Append(ctx, e.spreadsheetID, rng, rows)
	if err != nil {
		e.logger.WarnContext(ctx, "Export failed",
			log.FieldOperation, log.OpExport,
			log.FieldError, err)
		return Result{}, fmt.Errorf("append to %s: %w", rng, err)
	}

	e.logger.InfoContext(ctx, "Exported expenses",
		log.FieldOperation, log.OpExport,
		log.FieldCount, len(expenses),
		log.FieldRange, updated)
	return Result{Range: updated, Rows: len(expenses)}, nil
}

// BuildRows renders expenses as sheet rows, header first.
func BuildRows(expenses []core.Expense) [][]any {
	rows := make([][]any, 0, len(expenses)+1)
	rows = append(rows, Header)
	for _, x := range expenses {
		rows = append(rows, []any{
			core.FormatDate(x.Date),
			x.Description,
			core.FormatAmount(x.Amount),
			x.Category.String(),
			x.ID,
		})
	}
	return rows
}
