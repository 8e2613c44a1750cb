// Package openaistt transcribes audio through the OpenAI speech-to-text
// API.
//
// It is the hosted alternative to the whisperx package for machines without
// a usable local model. Verbose JSON responses carry per-segment timings,
// which feed the SRT generator directly.
package openaistt
