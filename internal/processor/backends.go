package processor

import (
	"context"
	"path/filepath"
	"strings"

	"reel/internal/services/openaistt"
	"reel/internal/services/whisperx"
	"reel/internal/subtitles"
)

// whisperxBackend adapts the local WhisperX service. WhisperX wants mono
// 16kHz WAV input, so non-WAV sources get an intermediate extraction.
type whisperxBackend struct {
	svc       *whisperx.Service
	extractor extractor
}

func (b *whisperxBackend) Transcribe(ctx context.Context, audioPath, lang string) (Transcription, error) {
	var out Transcription

	source := audioPath
	if !strings.EqualFold(filepath.Ext(audioPath), ".wav") {
		wav, err := b.extractor.ExtractWAV(ctx, audioPath, "")
		if err != nil {
			return out, err
		}
		source = wav
	}

	result, err := b.svc.TranscribeFile(ctx, source, filepath.Dir(audioPath), lang)
	if err != nil {
		return out, err
	}
	out.Text = result.Text

	segments, err := whisperx.LoadSegments(result.JSONPath)
	if err != nil {
		// Text still came through; segment timings are a bonus for SRT.
		return out, nil
	}
	out.Segments = make([]subtitles.Segment, 0, len(segments))
	for _, segment := range segments {
		out.Segments = append(out.Segments, subtitles.Segment{
			Start: segment.Start,
			End:   segment.End,
			Text:  segment.Text,
		})
	}
	return out, nil
}

// openaiBackend adapts the hosted OpenAI transcription service.
type openaiBackend struct {
	svc *openaistt.Service
}

func (b *openaiBackend) Transcribe(ctx context.Context, audioPath, lang string) (Transcription, error) {
	result, err := b.svc.Transcribe(ctx, audioPath, lang)
	if err != nil {
		return Transcription{}, err
	}
	return Transcription{Text: result.Text, Segments: result.Segments}, nil
}
