package batch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"reel/internal/config"
	"reel/internal/notifications"
	"reel/internal/services"
)

type call struct {
	op    string
	input string
	lang  string
}

type fakeOps struct {
	calls []call
	fail  map[string]error
}

func (f *fakeOps) record(op, input, lang string) (string, error) {
	f.calls = append(f.calls, call{op: op, input: input, lang: lang})
	if err, ok := f.fail[op]; ok {
		return "", err
	}
	return "/out/" + op, nil
}

func (f *fakeOps) DownloadVideo(_ context.Context, url string) (string, error) {
	return f.record("video", url, "")
}

func (f *fakeOps) DownloadAudio(_ context.Context, url string) (string, error) {
	return f.record("audio-download", url, "")
}

func (f *fakeOps) DownloadSubtitles(_ context.Context, url, lang string) (string, error) {
	return f.record("subtitles", url, lang)
}

func (f *fakeOps) ExtractAudio(_ context.Context, videoPath string) (string, error) {
	return f.record("audio-extract", videoPath, "")
}

func (f *fakeOps) Transcribe(_ context.Context, input string) (string, error) {
	return f.record("transcribe", input, "")
}

func (f *fakeOps) GenerateSRT(_ context.Context, input string) (string, error) {
	return f.record("srt-generate", input, "")
}

func (f *fakeOps) ConvertVTT(_ context.Context, vttPath string) (string, error) {
	return f.record("srt-convert", vttPath, "")
}

func noopNotifier() notifications.Service {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	return notifications.NewService(&cfg)
}

func writeCommands(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "auto.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newRunner(ops operations, resultsDir string) *Runner {
	return NewRunner(ops, slog.New(slog.DiscardHandler), noopNotifier(), resultsDir)
}

func TestRunDispatchesCommands(t *testing.T) {
	content := `# batch of everything
video https://example.com/v1

audio https://example.com/v2
audio /local/talk.mp4
subtitles https://example.com/v3 pt
transcribe /local/clip.mp3
srt /local/captions.vtt
srt https://example.com/v4
`
	ops := &fakeOps{}
	runner := newRunner(ops, t.TempDir())

	summary, err := runner.Run(context.Background(), writeCommands(t, content))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 7 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	want := []call{
		{op: "video", input: "https://example.com/v1"},
		{op: "audio-download", input: "https://example.com/v2"},
		{op: "audio-extract", input: "/local/talk.mp4"},
		{op: "subtitles", input: "https://example.com/v3", lang: "pt"},
		{op: "transcribe", input: "/local/clip.mp3"},
		{op: "srt-convert", input: "/local/captions.vtt"},
		{op: "srt-generate", input: "https://example.com/v4"},
	}
	if len(ops.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d: %+v", len(want), len(ops.calls), ops.calls)
	}
	for i, expected := range want {
		if ops.calls[i] != expected {
			t.Fatalf("call %d = %+v, want %+v", i, ops.calls[i], expected)
		}
	}
}

func TestRunSkipsUnknownAndContinuesOnFailure(t *testing.T) {
	content := `video https://example.com/v1
dance https://example.com/v2
transcribe /local/clip.mp3
video https://example.com/v3
`
	ops := &fakeOps{fail: map[string]error{"transcribe": errors.New("whisperx exploded")}}
	runner := newRunner(ops, t.TempDir())

	summary, err := runner.Run(context.Background(), writeCommands(t, content))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 2 {
		t.Fatalf("expected 2 processed, got %+v", summary)
	}
	if summary.Failed != 1 {
		t.Fatalf("expected 1 failed, got %+v", summary)
	}
	if summary.Skipped != 1 {
		t.Fatalf("expected 1 skipped, got %+v", summary)
	}
	if len(ops.calls) != 3 {
		t.Fatalf("expected batch to continue past the failure, got %+v", ops.calls)
	}
}

func TestRunMissingInputArgumentCountsAsFailure(t *testing.T) {
	ops := &fakeOps{}
	runner := newRunner(ops, t.TempDir())

	summary, err := runner.Run(context.Background(), writeCommands(t, "video\n"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Failed != 1 || summary.Processed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(ops.calls) != 0 {
		t.Fatalf("expected no dispatch, got %+v", ops.calls)
	}
}

func TestRunMissingFile(t *testing.T) {
	runner := newRunner(&fakeOps{}, t.TempDir())
	_, err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	if !services.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRunRefusesConcurrentBatch(t *testing.T) {
	resultsDir := t.TempDir()
	runner := newRunner(&fakeOps{}, resultsDir)

	unlock, err := runner.acquireLock()
	if err != nil {
		t.Fatalf("acquireLock: %v", err)
	}
	defer unlock()

	second := newRunner(&fakeOps{}, resultsDir)
	if _, err := second.Run(context.Background(), writeCommands(t, "video https://example.com/v\n")); err == nil {
		t.Fatal("expected lock contention error")
	}
}
