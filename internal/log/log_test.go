package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Output: &buf}).WithComponent(ComponentSession)
	logger.Info("saved", "user_id", "u1")

	out := buf.String()
	if !strings.Contains(out, "component=session") || !strings.Contains(out, "user_id=u1") {
		t.Fatalf("unexpected log line: %s", out)
	}
}

func TestStructuredLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Level: slog.LevelWarn, Output: &buf}))

	sl.LogAPICall(context.Background(), "GET", "/expenses", "", "req-1", 200, time.Millisecond)
	if buf.Len() != 0 {
		t.Fatalf("successful call should log below warn, got %s", buf.String())
	}

	sl.LogAPICall(context.Background(), "GET", "/expenses", "", "req-2", 404, time.Millisecond)
	if !strings.Contains(buf.String(), "status_code=404") {
		t.Fatalf("client error should be logged at warn: %s", buf.String())
	}

	buf.Reset()
	sl.LogError(context.Background(), "failed", errors.New("boom"), ComponentStorage, OpSave, nil)
	if !strings.Contains(buf.String(), "error=boom") || !strings.Contains(buf.String(), "operation=save") {
		t.Fatalf("unexpected error line: %s", buf.String())
	}
}
