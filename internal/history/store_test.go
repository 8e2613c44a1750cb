package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	job, err := store.Add(ctx, "video", "https://example.com/v")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if job.ID == "" {
		t.Fatal("expected generated id")
	}
	if job.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", job.Status)
	}

	loaded, err := store.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.Command != "video" || loaded.Input != "https://example.com/v" {
		t.Fatalf("unexpected job: %+v", loaded)
	}
	if loaded.CreatedAt.IsZero() || loaded.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps, got %+v", loaded)
	}
}

func TestStatusTransitions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	job, err := store.Add(ctx, "srt", "/videos/talk.vtt")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := store.MarkRunning(ctx, job.ID); err != nil {
		t.Fatalf("MarkRunning: %v", err)
	}
	loaded, err := store.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.Status != StatusRunning {
		t.Fatalf("expected running, got %q", loaded.Status)
	}

	if err := store.MarkCompleted(ctx, job.ID, "/videos/talk.srt"); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	loaded, err = store.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.Status != StatusCompleted || loaded.OutputPath != "/videos/talk.srt" {
		t.Fatalf("unexpected completed job: %+v", loaded)
	}
	if !loaded.Terminal() {
		t.Fatal("expected completed job to be terminal")
	}
}

func TestMarkFailedRecordsMessage(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	job, err := store.Add(ctx, "transcribe", "/audio/clip.mp3")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.MarkFailed(ctx, job.ID, "whisperx exited 1"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	loaded, err := store.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.Status != StatusFailed || loaded.ErrorMessage != "whisperx exited 1" {
		t.Fatalf("unexpected failed job: %+v", loaded)
	}
}

func TestUpdateUnknownJob(t *testing.T) {
	store := openTestStore(t)
	err := store.MarkRunning(context.Background(), "no-such-id")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * time.Minute
		store.now = func() time.Time { return base.Add(offset) }
		if _, err := store.Add(ctx, "audio", "https://example.com/v"); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	jobs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if !jobs[0].CreatedAt.After(jobs[1].CreatedAt) {
		t.Fatalf("expected newest first, got %v then %v", jobs[0].CreatedAt, jobs[1].CreatedAt)
	}
}

func TestClearAndSummary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, "video", "u1")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, "audio", "u2"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.MarkCompleted(ctx, first.ID, "/out.mp4"); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	summary, err := store.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary[StatusCompleted] != 1 || summary[StatusPending] != 1 {
		t.Fatalf("unexpected summary: %v", summary)
	}

	deleted, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted rows, got %d", deleted)
	}

	jobs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected empty history, got %d jobs", len(jobs))
	}
}

func TestSchemaVersionGuard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenPath(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}
