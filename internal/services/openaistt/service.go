package openaistt

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"reel/internal/language"
	"reel/internal/services"
	"reel/internal/subtitles"
)

// DefaultModel is the transcription model used when none is configured.
const DefaultModel = openai.Whisper1

// transcriber is the slice of the OpenAI client this service needs.
type transcriber interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// Service transcribes audio files via the OpenAI API.
type Service struct {
	client transcriber
	model  string
}

// NewService creates a service authenticated with the given API key.
func NewService(apiKey, model string) *Service {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Service{client: openai.NewClient(apiKey), model: model}
}

// WithClient replaces the API client (for testing).
func (s *Service) WithClient(client transcriber) {
	s.client = client
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.model
}

// Result holds one API transcription.
type Result struct {
	// Text is the plain text transcription.
	Text string
	// Segments carries per-segment timings for SRT generation.
	Segments []subtitles.Segment
}

// Transcribe sends the audio file at source to the API and returns the
// transcript with segment timings. lang hints the spoken language when set.
func (s *Service) Transcribe(ctx context.Context, source, lang string) (Result, error) {
	var result Result

	if strings.TrimSpace(source) == "" {
		return result, services.Wrap(services.ErrValidation, "openaistt", "transcribe", "source path required", nil)
	}
	if _, err := os.Stat(source); err != nil {
		return result, services.Wrap(services.ErrNotFound, "openaistt", "transcribe",
			fmt.Sprintf("audio file %s not found", source), err)
	}

	request := openai.AudioRequest{
		Model:    s.model,
		FilePath: source,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if iso := language.ToISO2(lang); iso != "" {
		request.Language = iso
	}

	response, err := s.client.CreateTranscription(ctx, request)
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, "openaistt", "transcribe", "transcription request failed", err)
	}

	result.Text = strings.TrimSpace(response.Text)
	result.Segments = make([]subtitles.Segment, 0, len(response.Segments))
	for _, segment := range response.Segments {
		result.Segments = append(result.Segments, subtitles.Segment{
			Start: segment.Start,
			End:   segment.End,
			Text:  segment.Text,
		})
	}
	return result, nil
}
