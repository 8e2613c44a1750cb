// Package media wraps ffmpeg for audio extraction from local video files.
//
// Two output shapes are produced: an MP3 at a configurable bitrate for
// user-facing results, and a mono 16kHz WAV that transcription backends
// consume. Commands run through an injectable runner so tests never invoke
// the real binary.
package media
