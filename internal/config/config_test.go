package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reel/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("OPENAI_API_KEY", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantResults := filepath.Join(tempHome, "reel", "results")
	if cfg.Paths.ResultsDir != wantResults {
		t.Fatalf("unexpected results dir: got %q want %q", cfg.Paths.ResultsDir, wantResults)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "reel", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Downloads.Resolution != "1080p" {
		t.Fatalf("unexpected resolution: %q", cfg.Downloads.Resolution)
	}
	if cfg.Transcription.Backend != "whisperx" {
		t.Fatalf("expected whisperx backend by default, got %q", cfg.Transcription.Backend)
	}
	if cfg.Transcription.WhisperXVADMethod != "silero" {
		t.Fatalf("expected silero VAD by default, got %q", cfg.Transcription.WhisperXVADMethod)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q %q", cfg.Logging.Format, cfg.Logging.Level)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.ResultsDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "reel.toml")
	content := `
[paths]
results_dir = "~/media/out"

[downloads]
resolution = "720P"
subtitle_language = " PT "

[transcription]
backend = "WhisperX"

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to load, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Paths.ResultsDir != filepath.Join(tempHome, "media", "out") {
		t.Fatalf("expected tilde expansion, got %q", cfg.Paths.ResultsDir)
	}
	if cfg.Downloads.Resolution != "720p" {
		t.Fatalf("expected lowercased resolution, got %q", cfg.Downloads.Resolution)
	}
	if cfg.Downloads.SubtitleLanguage != "pt" {
		t.Fatalf("expected trimmed lowercased language, got %q", cfg.Downloads.SubtitleLanguage)
	}
	if cfg.Transcription.Backend != "whisperx" {
		t.Fatalf("expected normalized backend, got %q", cfg.Transcription.Backend)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging values: %q %q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadRejectsBadResolution(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "reel.toml")
	if err := os.WriteFile(path, []byte("[downloads]\nresolution = \"fullhd\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for bad resolution")
	}
}

func TestLoadOpenAIBackendRequiresKey(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("OPENAI_API_KEY", "")

	path := filepath.Join(tempHome, "reel.toml")
	if err := os.WriteFile(path, []byte("[transcription]\nbackend = \"openai\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "openai_api_key") {
		t.Fatalf("expected missing key error, got %v", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("expected env key to satisfy validation: %v", err)
	}
	if cfg.Transcription.OpenAIAPIKey != "sk-test" {
		t.Fatalf("expected key from env, got %q", cfg.Transcription.OpenAIAPIKey)
	}
}

func TestLoadPyannoteRequiresToken(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("HUGGING_FACE_HUB_TOKEN", "")
	t.Setenv("HF_TOKEN", "")

	path := filepath.Join(tempHome, "reel.toml")
	if err := os.WriteFile(path, []byte("[transcription]\nwhisperx_vad_method = \"pyannote\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for pyannote without token")
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[transcription]") {
		t.Fatalf("expected sample to contain transcription section")
	}
}
