package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"reel/internal/services"
)

func TestContextFieldsExtractsAnnotations(t *testing.T) {
	ctx := services.WithCommand(t.Context(), "srt")
	ctx = services.WithJobID(ctx, "job-42")

	fields := ContextFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != FieldCommand || fields[0].Value.String() != "srt" {
		t.Fatalf("unexpected command field: %v", fields[0])
	}
	if fields[1].Key != FieldJobID || fields[1].Value.String() != "job-42" {
		t.Fatalf("unexpected job field: %v", fields[1])
	}
}

func TestContextFieldsEmptyContext(t *testing.T) {
	if fields := ContextFields(t.Context()); len(fields) != 0 {
		t.Fatalf("expected no fields, got %v", fields)
	}
}

func TestWithContextAugmentsLogger(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, level))

	ctx := services.WithJobID(t.Context(), "job-7")
	WithContext(ctx, logger).Info("transcript written")

	if !strings.Contains(buf.String(), "job_id=job-7") {
		t.Fatalf("expected job_id in output, got %q", buf.String())
	}
}
