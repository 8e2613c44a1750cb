// Package whisperx runs WhisperX through uvx for local speech-to-text.
//
// uvx resolves and caches the WhisperX distribution on first use, so no
// Python environment management happens here. The service consumes mono
// 16kHz WAV input (see the media package) and emits SRT, JSON, and plain
// text outputs into a chosen directory.
package whisperx
