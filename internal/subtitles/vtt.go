package subtitles

import (
	"regexp"
	"strings"
)

// The VTT translation is a whole-document text-transform pipeline. Each step
// assumes the cleanup performed by the steps before it; in particular the
// period-to-comma rewrite must run after tag stripping so it only sees
// numeric time fields.
var (
	vttTagPattern     = regexp.MustCompile(`<[^>]*>`)
	vttNotePattern    = regexp.MustCompile(`(?m)^NOTE.*$`)
	vttDecimalPattern = regexp.MustCompile(`(\d+)\.(\d+)`)
	vttTimingPattern  = regexp.MustCompile(`(?m)^(\d{2}:\d{2}:\d{2},\d{3})(?:[ \t]*-->[ \t]*(\d{2}:\d{2}:\d{2},\d{3}))?[^\n]*`)
)

// ParseVTT translates a WebVTT-style document into the cue model. Parsing is
// best-effort: timing lines the split pattern does not recognize fold into
// the adjacent cue text instead of failing, and a document with no timing
// lines at all yields an empty document.
func ParseVTT(content string) Document {
	content = stripHeader(content)
	content = vttTagPattern.ReplaceAllString(content, "")
	content = vttNotePattern.ReplaceAllString(content, "")
	content = vttDecimalPattern.ReplaceAllString(content, "$1,$2")

	matches := vttTimingPattern.FindAllStringSubmatchIndex(content, -1)
	doc := Document{Cues: make([]Cue, 0, len(matches))}
	for i, match := range matches {
		start, err := ParseTimestamp(content[match[2]:match[3]])
		if err != nil {
			continue
		}
		end := start
		if match[4] >= 0 {
			if parsed, err := ParseTimestamp(content[match[4]:match[5]]); err == nil {
				end = parsed
			}
		}

		textStart := match[1]
		textEnd := len(content)
		if i+1 < len(matches) {
			textEnd = matches[i+1][0]
		}
		doc.Cues = append(doc.Cues, Cue{
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(content[textStart:textEnd]),
		})
	}
	doc.Renumber()
	return doc
}

// stripHeader removes the WEBVTT header line, at most once, at the start of
// the document. A missing header is not an error.
func stripHeader(content string) string {
	trimmed := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(trimmed, "WEBVTT") {
		return content
	}
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		return trimmed[idx+1:]
	}
	return ""
}
