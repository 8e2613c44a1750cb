package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_API_KEY", "")
	return home
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestConfigNewWritesSample(t *testing.T) {
	setupHome(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, "config", "new", "--path", target)
	if err != nil {
		t.Fatalf("config new: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	requireContains(t, string(data), "[transcription]")

	// A second run without --overwrite refuses to clobber the file.
	if _, _, err := runCLI(t, "config", "new", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigPathWithoutFile(t *testing.T) {
	home := setupHome(t)

	out, _, err := runCLI(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	requireContains(t, out, filepath.Join(home, ".config", "reel", "config.toml"))
	requireContains(t, out, "defaults are in effect")
}

func TestConfigShowPrintsResolvedValues(t *testing.T) {
	setupHome(t)

	out, _, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "Backend:            whisperx")
	requireContains(t, out, "Resolution:         1080p")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "reel ")
}

func TestSRTCommandConvertsLocalVTT(t *testing.T) {
	setupHome(t)

	vttPath := filepath.Join(t.TempDir(), "captions.vtt")
	content := "WEBVTT\n\n00:00:01.000 --> 00:00:02.500\nHello world\n"
	if err := os.WriteFile(vttPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "srt", vttPath)
	if err != nil {
		t.Fatalf("srt: %v", err)
	}

	srtPath := strings.TrimSuffix(vttPath, ".vtt") + ".srt"
	requireContains(t, out, srtPath)

	data, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("expected srt output: %v", err)
	}
	want := "1\n00:00:01,000 --> 00:00:02,500\nHello world"
	if string(data) != want {
		t.Fatalf("unexpected srt content:\n%s", data)
	}
}

func TestSRTCommandMissingSource(t *testing.T) {
	setupHome(t)

	if _, _, err := runCLI(t, "srt", filepath.Join(t.TempDir(), "absent.vtt")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestVideoCommandRequiresURL(t *testing.T) {
	setupHome(t)

	if _, _, err := runCLI(t, "video"); err == nil {
		t.Fatal("expected argument error")
	}
}

func TestNotifyWithoutTopic(t *testing.T) {
	setupHome(t)

	out, _, err := runCLI(t, "test-notify")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "No ntfy topic configured")
}

func TestJobsListEmptyHistory(t *testing.T) {
	setupHome(t)

	out, _, err := runCLI(t, "jobs", "list")
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	requireContains(t, out, "No jobs recorded")
}
