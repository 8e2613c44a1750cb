// Command reel downloads media, extracts audio, transcribes speech, and
// converts subtitles.
package main
