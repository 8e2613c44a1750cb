package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"reel/internal/services"
)

// Command is the default yt-dlp binary name.
const Command = "yt-dlp"

// outputTemplate names downloads after the video title.
const outputTemplate = "%(title)s.%(ext)s"

// Client shells out to yt-dlp.
type Client struct {
	binary        string
	cookiesFile   string
	showProgress  bool
	commandRunner func(ctx context.Context, name string, args ...string) (string, error)
}

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the yt-dlp binary name.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// WithCookiesFile points yt-dlp at a Netscape-format cookies file. Missing
// files are ignored so stale config entries do not break downloads.
func WithCookiesFile(path string) Option {
	return func(c *Client) {
		c.cookiesFile = strings.TrimSpace(path)
	}
}

// WithProgress toggles yt-dlp's progress output.
func WithProgress(enabled bool) Option {
	return func(c *Client) {
		c.showProgress = enabled
	}
}

// WithCommandRunner sets a custom command runner (for testing). The runner
// returns yt-dlp's stdout.
func WithCommandRunner(runner func(ctx context.Context, name string, args ...string) (string, error)) Option {
	return func(c *Client) {
		c.commandRunner = runner
	}
}

// NewClient creates a yt-dlp client.
func NewClient(opts ...Option) *Client {
	client := &Client{binary: Command}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// DownloadVideo downloads the video at url into outputDir, capped at the
// given resolution (e.g. "1080p"), merged into an MP4 container. It returns
// the final file path.
func (c *Client) DownloadVideo(ctx context.Context, url, resolution, outputDir string) (string, error) {
	if err := validateURL(url); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrTransient, "ytdlp", "download-video", "ensure output directory", err)
	}

	height := strings.TrimSuffix(resolution, "p")
	args := c.baseArgs()
	args = append(args,
		"--format", fmt.Sprintf("bestvideo[height<=?%s]+bestaudio/best", height),
		"--merge-output-format", "mp4",
		"--output", filepath.Join(outputDir, outputTemplate),
		"--no-simulate",
		"--print", "after_move:filepath",
		url,
	)

	stdout, err := c.run(ctx, args)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "ytdlp", "download-video", "yt-dlp failed", err)
	}
	return extractPath(stdout, "ytdlp", "download-video")
}

// DownloadAudio downloads the best audio stream at url and converts it to
// MP3 at the given quality (a bitrate such as "192"). It returns the final
// file path.
func (c *Client) DownloadAudio(ctx context.Context, url, quality, outputDir string) (string, error) {
	if err := validateURL(url); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrTransient, "ytdlp", "download-audio", "ensure output directory", err)
	}

	args := c.baseArgs()
	args = append(args,
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", strings.TrimSuffix(strings.ToLower(quality), "k"),
		"--output", filepath.Join(outputDir, outputTemplate),
		"--no-simulate",
		"--print", "after_move:filepath",
		url,
	)

	stdout, err := c.run(ctx, args)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "ytdlp", "download-audio", "yt-dlp failed", err)
	}
	return extractPath(stdout, "ytdlp", "download-audio")
}

// DownloadSubtitles fetches subtitles for url in the given language as
// WebVTT, preferring uploaded captions and falling back to automatic ones.
// It returns the subtitle file path, or a not-found error when the video
// carries no captions in that language.
func (c *Client) DownloadSubtitles(ctx context.Context, url, language, outputDir string) (string, error) {
	if err := validateURL(url); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrTransient, "ytdlp", "download-subtitles", "ensure output directory", err)
	}

	before, err := listVTTFiles(outputDir)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "ytdlp", "download-subtitles", "scan output directory", err)
	}

	args := c.baseArgs()
	args = append(args,
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", language,
		"--sub-format", "vtt",
		"--output", filepath.Join(outputDir, outputTemplate),
		url,
	)

	if _, err := c.run(ctx, args); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "ytdlp", "download-subtitles", "yt-dlp failed", err)
	}

	after, err := listVTTFiles(outputDir)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "ytdlp", "download-subtitles", "scan output directory", err)
	}
	for path := range after {
		if _, existed := before[path]; !existed {
			return path, nil
		}
	}
	return "", services.Wrap(services.ErrNotFound, "ytdlp", "download-subtitles",
		fmt.Sprintf("no subtitles available for language %q", language), nil)
}

func (c *Client) baseArgs() []string {
	args := []string{"--no-warnings"}
	if !c.showProgress {
		args = append(args, "--quiet")
	} else {
		args = append(args, "--progress", "--newline")
	}
	if c.cookiesFile != "" {
		if _, err := os.Stat(c.cookiesFile); err == nil {
			args = append(args, "--cookies", c.cookiesFile)
		}
	}
	return args
}

func (c *Client) run(ctx context.Context, args []string) (string, error) {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, c.binary, args...)
	}

	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if c.showProgress {
		cmd.Stderr = os.Stderr
	} else {
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return "", fmt.Errorf("%s: %w: %s", c.binary, err, strings.TrimSpace(stderr.String()))
		}
		return stdout.String(), nil
	}
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w", c.binary, err)
	}
	return stdout.String(), nil
}

func validateURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return services.Wrap(services.ErrValidation, "ytdlp", "download", "url required", nil)
	}
	return nil
}

// extractPath picks the final file path from yt-dlp's --print output. The
// last non-empty line wins; playlists print one path per entry.
func extractPath(stdout, component, operation string) (string, error) {
	var path string
	for _, line := range strings.Split(stdout, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			path = trimmed
		}
	}
	if path == "" {
		return "", services.Wrap(services.ErrExternalTool, component, operation, "yt-dlp reported no output file", nil)
	}
	return path, nil
}

func listVTTFiles(dir string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".vtt") {
			files[filepath.Join(dir, entry.Name())] = struct{}{}
		}
	}
	return files, nil
}
