package subtitles

import "strings"

// Cue is one timed subtitle entry. Start and End are whole milliseconds from
// the beginning of the media. Index is assigned by output order at emit time,
// never parsed from input.
type Cue struct {
	Index int
	Start int64
	End   int64
	Text  string
}

// Document is an ordered sequence of cues in temporal/appearance order.
type Document struct {
	Cues []Cue
}

// Renumber assigns contiguous 1-based indexes in slice order, discarding any
// numbering carried over from the source.
func (d *Document) Renumber() {
	for i := range d.Cues {
		d.Cues[i].Index = i + 1
	}
}

// Segment is a timestamped span of recognized speech from a transcription
// backend. Times are float seconds.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// FromSegments builds a document with one cue per segment, in order. Segment
// text is trimmed; times go through the shared timestamp codec.
func FromSegments(segments []Segment) Document {
	doc := Document{Cues: make([]Cue, 0, len(segments))}
	for _, seg := range segments {
		doc.Cues = append(doc.Cues, Cue{
			Start: millisFromSeconds(seg.Start),
			End:   millisFromSeconds(seg.End),
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	doc.Renumber()
	return doc
}
