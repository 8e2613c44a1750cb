package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"reel/internal/config"
	"reel/internal/history"
	"reel/internal/logging"
	"reel/internal/media"
	"reel/internal/notifications"
	"reel/internal/services"
	"reel/internal/services/openaistt"
	"reel/internal/services/whisperx"
	"reel/internal/services/ytdlp"
	"reel/internal/subtitles"
)

// downloader is the yt-dlp surface the processor needs.
type downloader interface {
	DownloadVideo(ctx context.Context, url, resolution, outputDir string) (string, error)
	DownloadAudio(ctx context.Context, url, quality, outputDir string) (string, error)
	DownloadSubtitles(ctx context.Context, url, language, outputDir string) (string, error)
}

// extractor is the ffmpeg surface the processor needs.
type extractor interface {
	ExtractMP3(ctx context.Context, source, outputDir, bitrate string) (string, error)
	ExtractWAV(ctx context.Context, source, outputDir string) (string, error)
}

// Transcription is the backend-independent transcription outcome.
type Transcription struct {
	Text     string
	Segments []subtitles.Segment
}

// transcriber abstracts over the whisperx and openai backends.
type transcriber interface {
	Transcribe(ctx context.Context, audioPath, lang string) (Transcription, error)
}

// Processor ties the services together under one operation surface.
type Processor struct {
	cfg      *config.Config
	logger   *slog.Logger
	notifier notifications.Service
	store    *history.Store

	downloader downloader
	extractor  extractor
	backend    transcriber
}

// Option overrides a processor collaborator, primarily for tests.
type Option func(*Processor)

// WithDownloader replaces the yt-dlp client.
func WithDownloader(d downloader) Option {
	return func(p *Processor) { p.downloader = d }
}

// WithExtractor replaces the ffmpeg extractor.
func WithExtractor(e extractor) Option {
	return func(p *Processor) { p.extractor = e }
}

// WithTranscriber replaces the transcription backend.
func WithTranscriber(t transcriber) Option {
	return func(p *Processor) { p.backend = t }
}

// WithHistory attaches a job history store. A nil store disables recording.
func WithHistory(store *history.Store) Option {
	return func(p *Processor) { p.store = store }
}

// New builds a processor from configuration. The notifier may be a noop
// service; the history store is optional.
func New(cfg *config.Config, logger *slog.Logger, notifier notifications.Service, opts ...Option) *Processor {
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	ffmpeg := media.NewExtractor(cfg.FFmpegBinary())
	p := &Processor{
		cfg:      cfg,
		logger:   logger,
		notifier: notifier,
		downloader: ytdlp.NewClient(
			ytdlp.WithBinary(cfg.YtdlpBinary()),
			ytdlp.WithCookiesFile(cfg.Downloads.CookiesFile),
			ytdlp.WithProgress(cfg.Downloads.ShowProgress),
		),
		extractor: ffmpeg,
	}

	switch cfg.Transcription.Backend {
	case "openai":
		p.backend = &openaiBackend{
			svc: openaistt.NewService(cfg.Transcription.OpenAIAPIKey, cfg.Transcription.OpenAIModel),
		}
	default:
		p.backend = &whisperxBackend{
			svc: whisperx.NewService(whisperx.Config{
				Model:       cfg.Transcription.WhisperXModel,
				CUDAEnabled: cfg.Transcription.WhisperXCUDA,
				VADMethod:   cfg.Transcription.WhisperXVADMethod,
				HFToken:     cfg.Transcription.WhisperXHFToken,
			}),
			extractor: ffmpeg,
		}
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DownloadVideo fetches the video at url into the results directory and
// returns the downloaded file path.
func (p *Processor) DownloadVideo(ctx context.Context, url string) (string, error) {
	ctx, job := p.begin(ctx, "video", url)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("downloading video", "url", url, "resolution", p.cfg.Downloads.Resolution)

	path, err := p.downloader.DownloadVideo(ctx, url, p.cfg.Downloads.Resolution, p.cfg.Paths.ResultsDir)
	job.finish(ctx, path, err)
	if err != nil {
		p.notifyError(ctx, err, "video download")
		return "", err
	}

	logger.Info("video downloaded", "path", path)
	p.notify(ctx, func(n notifications.Service) error {
		return n.NotifyDownloadCompleted(ctx, "video", displayName(path), path)
	})
	return path, nil
}

// DownloadAudio fetches the audio stream at url as MP3 and returns the
// downloaded file path.
func (p *Processor) DownloadAudio(ctx context.Context, url string) (string, error) {
	ctx, job := p.begin(ctx, "audio", url)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("downloading audio", "url", url)

	path, err := p.downloader.DownloadAudio(ctx, url, p.cfg.Downloads.AudioQuality, p.cfg.Paths.ResultsDir)
	job.finish(ctx, path, err)
	if err != nil {
		p.notifyError(ctx, err, "audio download")
		return "", err
	}

	logger.Info("audio downloaded", "path", path)
	p.notify(ctx, func(n notifications.Service) error {
		return n.NotifyDownloadCompleted(ctx, "audio", displayName(path), path)
	})
	return path, nil
}

// DownloadSubtitles fetches subtitles for url as WebVTT, converts them to
// SRT, and returns the SRT path. lang falls back to the configured subtitle
// language.
func (p *Processor) DownloadSubtitles(ctx context.Context, url, lang string) (string, error) {
	if strings.TrimSpace(lang) == "" {
		lang = p.cfg.Downloads.SubtitleLanguage
	}
	ctx, job := p.begin(ctx, "subtitles", url)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("downloading subtitles", "url", url, "language", lang)

	vttPath, err := p.downloader.DownloadSubtitles(ctx, url, lang, p.cfg.Paths.ResultsDir)
	if err != nil {
		job.finish(ctx, "", err)
		p.notifyError(ctx, err, "subtitle download")
		return "", err
	}

	srtPath, err := subtitles.ConvertVTTFile(vttPath)
	job.finish(ctx, srtPath, err)
	if err != nil {
		p.notifyError(ctx, err, "subtitle conversion")
		return "", err
	}

	logger.Info("subtitles converted", "path", srtPath)
	p.notify(ctx, func(n notifications.Service) error {
		return n.NotifyDownloadCompleted(ctx, "subtitles", displayName(srtPath), srtPath)
	})
	return srtPath, nil
}

// ExtractAudio pulls an MP3 from a local video file into the results
// directory.
func (p *Processor) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	ctx, job := p.begin(ctx, "extract", videoPath)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("extracting audio", "source", videoPath)

	path, err := p.extractor.ExtractMP3(ctx, videoPath, p.cfg.Paths.ResultsDir, p.cfg.Downloads.AudioQuality)
	job.finish(ctx, path, err)
	if err != nil {
		p.notifyError(ctx, err, "audio extraction")
		return "", err
	}

	logger.Info("audio extracted", "path", path)
	p.notify(ctx, func(n notifications.Service) error {
		return n.NotifyDownloadCompleted(ctx, "extraction", displayName(path), path)
	})
	return path, nil
}

// Transcribe produces a plain-text transcript for a URL or local file and
// returns the .txt path written next to the audio.
func (p *Processor) Transcribe(ctx context.Context, input string) (string, error) {
	ctx, job := p.begin(ctx, "transcribe", input)
	logger := logging.WithContext(ctx, p.logger)

	audioPath, err := p.resolveAudio(ctx, input)
	if err != nil {
		job.finish(ctx, "", err)
		p.notifyError(ctx, err, "transcription input")
		return "", err
	}

	logger.Info("transcribing", "audio", audioPath, "language", p.cfg.Transcription.Language)
	result, err := p.backend.Transcribe(ctx, audioPath, p.cfg.Transcription.Language)
	if err != nil {
		job.finish(ctx, "", err)
		p.notifyError(ctx, err, "transcription")
		return "", err
	}

	txtPath := subtitles.SiblingPath(audioPath, ".txt")
	if err := os.WriteFile(txtPath, []byte(result.Text+"\n"), 0o644); err != nil {
		err = services.Wrap(services.ErrTransient, "processor", "transcribe", "write transcript", err)
		job.finish(ctx, "", err)
		return "", err
	}

	job.finish(ctx, txtPath, nil)
	logger.Info("transcript written", "path", txtPath)
	p.notify(ctx, func(n notifications.Service) error {
		return n.NotifyTranscriptionCompleted(ctx, displayName(txtPath), txtPath)
	})
	return txtPath, nil
}

// GenerateSRT transcribes a URL or local file and writes an SRT with cue
// timings next to the audio, returning its path.
func (p *Processor) GenerateSRT(ctx context.Context, input string) (string, error) {
	ctx, job := p.begin(ctx, "srt", input)
	logger := logging.WithContext(ctx, p.logger)

	audioPath, err := p.resolveAudio(ctx, input)
	if err != nil {
		job.finish(ctx, "", err)
		p.notifyError(ctx, err, "srt input")
		return "", err
	}

	logger.Info("transcribing for subtitles", "audio", audioPath)
	result, err := p.backend.Transcribe(ctx, audioPath, p.cfg.Transcription.Language)
	if err != nil {
		job.finish(ctx, "", err)
		p.notifyError(ctx, err, "srt transcription")
		return "", err
	}

	srtPath, err := subtitles.GenerateSRTFile(audioPath, result.Segments)
	job.finish(ctx, srtPath, err)
	if err != nil {
		p.notifyError(ctx, err, "srt generation")
		return "", err
	}

	logger.Info("subtitles written", "path", srtPath, "cues", len(result.Segments))
	p.notify(ctx, func(n notifications.Service) error {
		return n.NotifyTranscriptionCompleted(ctx, displayName(srtPath), srtPath)
	})
	return srtPath, nil
}

// ConvertVTT converts a local WebVTT file to SRT at a sibling path.
func (p *Processor) ConvertVTT(ctx context.Context, vttPath string) (string, error) {
	ctx, job := p.begin(ctx, "convert", vttPath)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("converting subtitles", "source", vttPath)

	srtPath, err := subtitles.ConvertVTTFile(vttPath)
	job.finish(ctx, srtPath, err)
	if err != nil {
		p.notifyError(ctx, err, "subtitle conversion")
		return "", err
	}

	logger.Info("subtitles converted", "path", srtPath)
	return srtPath, nil
}

// resolveAudio turns a URL or local path into a local audio file, downloading
// or extracting as needed.
func (p *Processor) resolveAudio(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", services.Wrap(services.ErrValidation, "processor", "resolve-audio", "input required", nil)
	}

	if IsURL(input) {
		return p.downloader.DownloadAudio(ctx, input, p.cfg.Downloads.AudioQuality, p.cfg.Paths.ResultsDir)
	}

	if _, err := os.Stat(input); err != nil {
		return "", services.Wrap(services.ErrNotFound, "processor", "resolve-audio",
			fmt.Sprintf("input file %s not found", input), err)
	}
	if isAudioFile(input) {
		return input, nil
	}
	return p.extractor.ExtractMP3(ctx, input, p.cfg.Paths.ResultsDir, p.cfg.Downloads.AudioQuality)
}

// IsURL reports whether input names a remote source.
func IsURL(input string) bool {
	lowered := strings.ToLower(strings.TrimSpace(input))
	return strings.HasPrefix(lowered, "http://") || strings.HasPrefix(lowered, "https://")
}

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".aac":  {},
	".flac": {},
	".ogg":  {},
	".opus": {},
}

func isAudioFile(path string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func displayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// jobRecord tracks one history row across an operation.
type jobRecord struct {
	p  *Processor
	id string
}

// begin opens a history row and annotates the context so downstream log
// lines carry the command and job identifier.
func (p *Processor) begin(ctx context.Context, command, input string) (context.Context, *jobRecord) {
	ctx = services.WithCommand(ctx, command)
	record := &jobRecord{p: p}
	if p.store == nil {
		return ctx, record
	}
	job, err := p.store.Add(ctx, command, input)
	if err != nil {
		p.logger.Warn("history record failed", "command", command, "error", err)
		return ctx, record
	}
	record.id = job.ID
	ctx = services.WithJobID(ctx, job.ID)
	if err := p.store.MarkRunning(ctx, job.ID); err != nil {
		p.logger.Warn("history update failed", "job", job.ID, "error", err)
	}
	return ctx, record
}

func (r *jobRecord) finish(ctx context.Context, outputPath string, opErr error) {
	if r.p.store == nil || r.id == "" {
		return
	}
	var err error
	if opErr != nil {
		err = r.p.store.MarkFailed(ctx, r.id, opErr.Error())
	} else {
		err = r.p.store.MarkCompleted(ctx, r.id, outputPath)
	}
	if err != nil {
		r.p.logger.Warn("history update failed", "job", r.id, "error", err)
	}
}

func (p *Processor) notify(ctx context.Context, send func(notifications.Service) error) {
	if err := send(p.notifier); err != nil {
		p.logger.Warn("notification failed", "error", err)
	}
}

func (p *Processor) notifyError(ctx context.Context, opErr error, label string) {
	if err := p.notifier.NotifyError(ctx, opErr, label); err != nil {
		p.logger.Warn("notification failed", "error", err)
	}
}
