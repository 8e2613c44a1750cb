// Package language normalizes language identifiers across the tools reel
// drives: yt-dlp takes BCP-47 subtitle tags, WhisperX takes ISO 639-1, and
// users type whatever they remember.
package language
