package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestLogger(t *testing.T, buf *bytes.Buffer, format string) *slog.Logger {
	t.Helper()
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelDebug)
	switch format {
	case "json":
		return slog.New(newJSONHandler(buf, levelVar))
	default:
		return slog.New(newConsoleHandler(buf, levelVar))
	}
}

func TestConsoleHandlerComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(newTestLogger(t, &buf, "console"), "processor")
	logger.Info("download complete", "url", "https://example.com/v", "attempts", 2)

	line := buf.String()
	if !strings.Contains(line, " INFO processor: download complete") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "url=https://example.com/v") {
		t.Fatalf("expected url attribute, got %q", line)
	}
	if !strings.Contains(line, "attempts=2") {
		t.Fatalf("expected attempts attribute, got %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf, "console")
	logger.Warn("skipping line", "reason", "unknown command")

	if !strings.Contains(buf.String(), `reason="unknown command"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	handler := newConsoleHandler(&buf, levelVar)
	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected info to be suppressed at warn level")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected error to pass at warn level")
	}
}

func TestJSONHandlerFieldNames(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf, "json")
	logger.Info("converted", "cues", 12)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if record["msg"] != "converted" {
		t.Fatalf("expected msg field, got %v", record)
	}
	if record["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
	ts, ok := record["ts"].(string)
	if !ok {
		t.Fatalf("expected ts field, got %v", record)
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Fatalf("expected RFC3339 timestamp, got %q", ts)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
