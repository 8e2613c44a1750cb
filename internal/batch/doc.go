// Package batch executes command files: one operation per line, blank
// lines and # comments skipped.
//
// A batch holds an exclusive lock on the results directory for its
// duration so concurrent batch runs cannot interleave outputs. Individual
// line failures are logged and counted; the batch always runs to the end.
package batch
