// Package history persists a record of processing jobs in SQLite.
//
// Every download, extraction, transcription, or conversion becomes a job
// row that moves through pending, running, and a terminal completed or
// failed state. The store is advisory: processing proceeds even if history
// recording fails.
package history
