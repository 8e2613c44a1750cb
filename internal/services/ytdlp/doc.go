// Package ytdlp wraps the yt-dlp binary for video, audio, and subtitle
// downloads.
//
// Downloaded file paths are recovered via yt-dlp's --print after_move
// template rather than guessing output names. Subtitle downloads scan the
// output directory because yt-dlp offers no print hook for subtitle files.
package ytdlp
