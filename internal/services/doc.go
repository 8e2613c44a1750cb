// Package services defines the shared error taxonomy for external
// collaborators (yt-dlp, ffmpeg, transcription backends) and the context
// annotations job processing attaches for logging.
package services
