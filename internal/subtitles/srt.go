package subtitles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reel/internal/services"
)

// RenderSRT serializes the document in indexed comma-millisecond form.
// Blocks are separated by exactly one blank line and the final document is
// trimmed of trailing whitespace. An empty document renders as an empty
// string.
func (d Document) RenderSRT() string {
	blocks := make([]string, 0, len(d.Cues))
	for _, cue := range d.Cues {
		blocks = append(blocks, fmt.Sprintf("%d\n%s --> %s\n%s",
			cue.Index, FormatMillis(cue.Start), FormatMillis(cue.End), cue.Text))
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

// WriteSRT serializes the document to path. A truncated file may remain if
// the write fails mid-stream; retry policy belongs to the caller.
func (d Document) WriteSRT(path string) error {
	if err := os.WriteFile(path, []byte(d.RenderSRT()), 0o644); err != nil {
		return services.Wrap(services.ErrTransient, "subtitles", "write srt", path, err)
	}
	return nil
}

// ConvertVTTFile converts a cue-markup subtitle file to SRT at the sibling
// path sharing the source's base name. The source must exist; a markup
// document with no timing lines still produces an (empty) output file.
func ConvertVTTFile(vttPath string) (string, error) {
	if _, err := os.Stat(vttPath); err != nil {
		return "", services.Wrap(services.ErrNotFound, "subtitles", "convert vtt", vttPath, err)
	}
	data, err := os.ReadFile(vttPath)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "subtitles", "read vtt", vttPath, err)
	}

	doc := ParseVTT(string(data))
	srtPath := SiblingPath(vttPath, ".srt")
	if err := doc.WriteSRT(srtPath); err != nil {
		return "", err
	}
	return srtPath, nil
}

// GenerateSRTFile builds a document from transcription segments and writes it
// next to the audio source. Zero segments yield a valid empty subtitle file.
func GenerateSRTFile(audioPath string, segments []Segment) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", services.Wrap(services.ErrNotFound, "subtitles", "generate srt", audioPath, err)
	}
	srtPath := SiblingPath(audioPath, ".srt")
	if err := FromSegments(segments).WriteSRT(srtPath); err != nil {
		return "", err
	}
	return srtPath, nil
}

// SiblingPath swaps the extension of path, keeping directory and stem.
func SiblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
