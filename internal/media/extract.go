package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"reel/internal/services"
	"reel/internal/subtitles"
)

// FFmpegCommand is the default ffmpeg binary name.
const FFmpegCommand = "ffmpeg"

// Extractor runs ffmpeg to pull audio streams out of video containers.
type Extractor struct {
	ffmpegBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewExtractor creates an extractor using the given ffmpeg binary name.
func NewExtractor(ffmpegBinary string) *Extractor {
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	return &Extractor{ffmpegBinary: ffmpegBinary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Extractor) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	e.commandRunner = runner
}

// ExtractMP3 extracts the audio stream from source into an MP3 file placed
// in outputDir, named after the source file. bitrate is an ffmpeg audio
// bitrate such as "192k"; a bare number is accepted and suffixed with "k".
func (e *Extractor) ExtractMP3(ctx context.Context, source, outputDir, bitrate string) (string, error) {
	if err := checkSource(source); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrTransient, "media", "extract-mp3", "ensure output directory", err)
	}

	dest := filepath.Join(outputDir, baseName(source)+".mp3")
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-c:a", "libmp3lame",
		"-b:a", normalizeBitrate(bitrate),
		dest,
	}
	if err := e.run(ctx, args); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "media", "extract-mp3", "ffmpeg extraction failed", err)
	}
	return dest, nil
}

// ExtractWAV extracts a mono 16kHz PCM WAV sibling of source, the shape
// transcription backends expect. The file lands next to source unless
// outputDir is set.
func (e *Extractor) ExtractWAV(ctx context.Context, source, outputDir string) (string, error) {
	if err := checkSource(source); err != nil {
		return "", err
	}
	var dest string
	if outputDir == "" {
		dest = subtitles.SiblingPath(source, ".wav")
	} else {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return "", services.Wrap(services.ErrTransient, "media", "extract-wav", "ensure output directory", err)
		}
		dest = filepath.Join(outputDir, baseName(source)+".wav")
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	if err := e.run(ctx, args); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "media", "extract-wav", "ffmpeg extraction failed", err)
	}
	return dest, nil
}

func (e *Extractor) run(ctx context.Context, args []string) error {
	if e.commandRunner != nil {
		return e.commandRunner(ctx, e.ffmpegBinary, args...)
	}
	cmd := exec.CommandContext(ctx, e.ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", e.ffmpegBinary, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func checkSource(source string) error {
	if strings.TrimSpace(source) == "" {
		return services.Wrap(services.ErrValidation, "media", "extract", "source path required", nil)
	}
	if _, err := os.Stat(source); err != nil {
		return services.Wrap(services.ErrNotFound, "media", "extract", fmt.Sprintf("source file %s not found", source), err)
	}
	return nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func normalizeBitrate(bitrate string) string {
	trimmed := strings.TrimSpace(bitrate)
	if trimmed == "" {
		return "192k"
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return trimmed
		}
	}
	return trimmed + "k"
}
