// Package subtitles converts between subtitle formats and generates SRT
// documents from transcription segments.
//
// The package centers on a shared cue model: an ordered, renumbered sequence
// of timed text entries. Two producers feed it:
//   - ParseVTT, which translates WebVTT-style cue markup into the model, and
//   - FromSegments, which maps transcription segments one-to-one onto cues.
//
// A single timestamp codec (FormatTimestamp/ParseTimestamp) handles all
// conversion between second offsets and the comma-millisecond SRT form, so
// emitted timing is bit-exact regardless of producer.
package subtitles
