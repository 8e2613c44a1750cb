package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reel/internal/config"
	"reel/internal/notifications"
)

type captured struct {
	title    string
	tags     string
	priority string
	body     string
}

func newCaptureServer(t *testing.T, sink *[]captured) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		*sink = append(*sink, captured{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		w.WriteHeader(http.StatusOK)
	}))
}

func newNtfyService(topic string) notifications.Service {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = topic
	cfg.Notifications.RequestTimeout = 5
	return notifications.NewService(&cfg)
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyDownloadCompleted(context.Background(), "video", "Example", "/out.mp4"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := svc.TestNotification(context.Background()); err != nil {
		t.Fatalf("expected noop test notification to return nil, got %v", err)
	}
}

func TestNotifyDownloadCompletedFormatsPayload(t *testing.T) {
	var sink []captured
	server := newCaptureServer(t, &sink)
	defer server.Close()

	svc := newNtfyService(server.URL)
	if err := svc.NotifyDownloadCompleted(context.Background(), "video", "My Talk", "/results/My Talk.mp4"); err != nil {
		t.Fatalf("NotifyDownloadCompleted: %v", err)
	}

	if len(sink) != 1 {
		t.Fatalf("expected one request, got %d", len(sink))
	}
	got := sink[0]
	if got.title != "Reel - Download Complete" {
		t.Fatalf("unexpected title: %q", got.title)
	}
	if got.tags != "reel,download,completed" {
		t.Fatalf("unexpected tags: %q", got.tags)
	}
	if got.body != "Finished video: My Talk\nFile: /results/My Talk.mp4" {
		t.Fatalf("unexpected body: %q", got.body)
	}
}

func TestNotifyBatchCompletedWithFailures(t *testing.T) {
	var sink []captured
	server := newCaptureServer(t, &sink)
	defer server.Close()

	svc := newNtfyService(server.URL)
	if err := svc.NotifyBatchCompleted(context.Background(), 3, 1, 90*time.Second); err != nil {
		t.Fatalf("NotifyBatchCompleted: %v", err)
	}

	got := sink[0]
	if got.title != "Reel - Batch Complete (with errors)" {
		t.Fatalf("unexpected title: %q", got.title)
	}
	if got.body != "Batch complete: 3 succeeded, 1 failed in 1m30s" {
		t.Fatalf("unexpected body: %q", got.body)
	}
}

func TestNotifyErrorUsesHighPriority(t *testing.T) {
	var sink []captured
	server := newCaptureServer(t, &sink)
	defer server.Close()

	svc := newNtfyService(server.URL)
	if err := svc.NotifyError(context.Background(), errors.New("yt-dlp exited 1"), "video download"); err != nil {
		t.Fatalf("NotifyError: %v", err)
	}

	got := sink[0]
	if got.priority != "high" {
		t.Fatalf("expected high priority, got %q", got.priority)
	}
	if got.body != "Error with video download: yt-dlp exited 1" {
		t.Fatalf("unexpected body: %q", got.body)
	}
}

func TestSendSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "topic rejected", http.StatusForbidden)
	}))
	defer server.Close()

	svc := newNtfyService(server.URL)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
