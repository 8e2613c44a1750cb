// Package processor orchestrates downloads, audio extraction,
// transcription, and subtitle conversion.
//
// Each operation resolves its input (URL or local file), drives the
// underlying service, records a history row, and emits a notification.
// History and notifications are best-effort; failures there never fail the
// operation itself.
package processor
