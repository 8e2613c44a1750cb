// Package logging builds slog loggers for the CLI.
//
// Two output formats are supported: a human-oriented console format with a
// component prefix and key=value attributes, and line-delimited JSON for log
// files or machine consumption. NewFromConfig tees output to stdout and a
// log file under the configured log directory.
package logging
