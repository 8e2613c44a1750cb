package batch

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"reel/internal/notifications"
	"reel/internal/processor"
	"reel/internal/services"
)

// lockFileName sits inside the results directory while a batch runs.
const lockFileName = ".reel-batch.lock"

// operations is the processor surface batch commands dispatch to.
type operations interface {
	DownloadVideo(ctx context.Context, url string) (string, error)
	DownloadAudio(ctx context.Context, url string) (string, error)
	DownloadSubtitles(ctx context.Context, url, lang string) (string, error)
	ExtractAudio(ctx context.Context, videoPath string) (string, error)
	Transcribe(ctx context.Context, input string) (string, error)
	GenerateSRT(ctx context.Context, input string) (string, error)
	ConvertVTT(ctx context.Context, vttPath string) (string, error)
}

// Runner executes batch command files against a processor.
type Runner struct {
	ops        operations
	logger     *slog.Logger
	notifier   notifications.Service
	resultsDir string
}

// NewRunner creates a batch runner. resultsDir is where the exclusive lock
// lives.
func NewRunner(ops operations, logger *slog.Logger, notifier notifications.Service, resultsDir string) *Runner {
	return &Runner{ops: ops, logger: logger, notifier: notifier, resultsDir: resultsDir}
}

// Summary reports the outcome of one batch run.
type Summary struct {
	Processed int
	Failed    int
	Skipped   int
}

// Run parses the command file at path and executes each line in order.
// The returned Summary is valid even when err is nil and some lines failed.
func (r *Runner) Run(ctx context.Context, path string) (Summary, error) {
	var summary Summary

	file, err := os.Open(path)
	if err != nil {
		return summary, services.Wrap(services.ErrNotFound, "batch", "run",
			fmt.Sprintf("command file %s not found", path), err)
	}
	defer file.Close()

	unlock, err := r.acquireLock()
	if err != nil {
		return summary, err
	}
	defer unlock()

	lines, err := parseLines(file)
	if err != nil {
		return summary, services.Wrap(services.ErrTransient, "batch", "run", "read command file", err)
	}

	r.logger.Info("batch started", "file", path, "commands", len(lines))
	if err := r.notifier.NotifyBatchStarted(ctx, len(lines)); err != nil {
		r.logger.Warn("notification failed", "error", err)
	}
	started := time.Now()

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		output, err := r.dispatch(ctx, line)
		switch {
		case err == errUnknownCommand:
			r.logger.Warn("skipping unknown command", "line", line.number, "command", line.command)
			summary.Skipped++
		case err != nil:
			r.logger.Error("command failed", "line", line.number, "command", line.command,
				"input", line.input, "error", err)
			summary.Failed++
		default:
			r.logger.Info("command finished", "line", line.number, "command", line.command, "output", output)
			summary.Processed++
		}
	}

	duration := time.Since(started)
	r.logger.Info("batch finished", "processed", summary.Processed, "failed", summary.Failed,
		"skipped", summary.Skipped, "duration", duration.Round(time.Second))
	if err := r.notifier.NotifyBatchCompleted(ctx, summary.Processed, summary.Failed, duration); err != nil {
		r.logger.Warn("notification failed", "error", err)
	}
	return summary, nil
}

func (r *Runner) acquireLock() (func(), error) {
	if err := os.MkdirAll(r.resultsDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrTransient, "batch", "lock", "ensure results directory", err)
	}
	lock := flock.New(filepath.Join(r.resultsDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "batch", "lock", "acquire batch lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrValidation, "batch", "lock",
			"another batch is already running against this results directory", nil)
	}
	return func() { _ = lock.Unlock() }, nil
}

var errUnknownCommand = fmt.Errorf("unknown command")

type commandLine struct {
	number  int
	command string
	input   string
	args    []string
}

func parseLines(file *os.File) ([]commandLine, error) {
	var lines []commandLine
	scanner := bufio.NewScanner(file)
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		line := commandLine{number: number, command: strings.ToLower(fields[0])}
		if len(fields) > 1 {
			line.input = fields[1]
		}
		if len(fields) > 2 {
			line.args = fields[2:]
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

var knownCommands = map[string]struct{}{
	"video": {}, "audio": {}, "subtitles": {}, "transcribe": {}, "srt": {},
}

func (r *Runner) dispatch(ctx context.Context, line commandLine) (string, error) {
	if _, ok := knownCommands[line.command]; !ok {
		return "", errUnknownCommand
	}
	if line.input == "" {
		return "", fmt.Errorf("line %d: command %q needs an input argument", line.number, line.command)
	}
	switch line.command {
	case "video":
		return r.ops.DownloadVideo(ctx, line.input)
	case "audio":
		if processor.IsURL(line.input) {
			return r.ops.DownloadAudio(ctx, line.input)
		}
		return r.ops.ExtractAudio(ctx, line.input)
	case "subtitles":
		lang := ""
		if len(line.args) > 0 {
			lang = line.args[0]
		}
		return r.ops.DownloadSubtitles(ctx, line.input, lang)
	case "transcribe":
		return r.ops.Transcribe(ctx, line.input)
	case "srt":
		if strings.EqualFold(filepath.Ext(line.input), ".vtt") {
			return r.ops.ConvertVTT(ctx, line.input)
		}
		return r.ops.GenerateSRT(ctx, line.input)
	default:
		return "", errUnknownCommand // unreachable, commands filtered above
	}
}
