package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spese-client/internal/core"
	"spese-client/internal/log"
)

type fakeAppender struct {
	spreadsheetID string
	rng           string
	rows          [][]any
	err           error
}

func (f *fakeAppender) Append(_ context.Context, spreadsheetID, rng string, rows [][]any) (string, error) {
	f.spreadsheetID = spreadsheetID
	f.rng = rng
	f.rows = rows
	if f.err != nil {
		return "", f.err
	}
	return rng + "1", nil
}

func sample() []core.Expense {
	return []core.Expense{
		{ID: "1", Amount: decimal.RequireFromString("12.5"), Description: "Lunch", Date: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), Category: core.CategoryFood},
		{ID: "2", Amount: decimal.RequireFromString("3"), Description: "Bus", Date: time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), Category: core.CategoryTransport},
	}
}

func TestBuildRows(t *testing.T) {
	rows := BuildRows(sample())
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" {
		t.Errorf("expected header first, got %v", rows[0])
	}
	want := []any{"2024-03-01", "Lunch", "12.50", "Food", "1"}
	for i, v := range want {
		if rows[1][i] != v {
			t.Errorf("row 1 col %d: expected %v, got %v", i, v, rows[1][i])
		}
	}
	if rows[2][2] != "3.00" {
		t.Errorf("expected amount 3.00, got %v", rows[2][2])
	}
}

func TestBuildRows_Empty(t *testing.T) {
	rows := BuildRows(nil)
	if len(rows) != 1 {
		t.Fatalf("expected only the header, got %d rows", len(rows))
	}
}

func TestExport(t *testing.T) {
	fa := &fakeAppender{}
	exp := newSheetsExporter(fa, Config{SpreadsheetID: "sheet-1", SheetName: "Mine"}, log.Nop())

	res, err := exp.Export(context.Background(), sample())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fa.spreadsheetID != "sheet-1" {
		t.Errorf("expected spreadsheet sheet-1, got %q", fa.spreadsheetID)
	}
	if fa.rng != "Mine!A:E" {
		t.Errorf("expected range Mine!A:E, got %q", fa.rng)
	}
	if res.Rows != 2 || res.Range != "Mine!A:E1" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestExport_DefaultSheetName(t *testing.T) {
	fa := &fakeAppender{}
	exp := newSheetsExporter(fa, Config{SpreadsheetID: "s"}, log.Nop())
	if _, err := exp.Export(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fa.rng != "Expenses!A:E" {
		t.Errorf("expected default sheet, got %q", fa.rng)
	}
}

func TestExport_Failure(t *testing.T) {
	boom := errors.New("quota exceeded")
	exp := newSheetsExporter(&fakeAppender{err: boom}, Config{SpreadsheetID: "s"}, log.Nop())

	_, err := exp.Export(context.Background(), sample())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	file := filepath.Join(t.TempDir(), "sa.json")
	if err := os.WriteFile(file, []byte(`{"from":"file"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr string
	}{
		{name: "inline wins", cfg: Config{ServiceAccountJSON: `{"from":"inline"}`, ServiceAccountFile: file}, want: `{"from":"inline"}`},
		{name: "file", cfg: Config{ServiceAccountFile: file}, want: `{"from":"file"}`},
		{name: "missing file", cfg: Config{ServiceAccountFile: file + ".nope"}, wantErr: "read service account file"},
		{name: "none", cfg: Config{}, wantErr: "missing service account credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := credentials(tt.cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewSheetsExporter_MissingSpreadsheet(t *testing.T) {
	if _, err := NewSheetsExporter(context.Background(), Config{ServiceAccountJSON: "{}"}, nil); err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
}
