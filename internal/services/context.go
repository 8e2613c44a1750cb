package services

import "context"

type contextKey string

const (
	jobIDKey   contextKey = "job_id"
	commandKey contextKey = "command"
)

// WithJobID annotates context with the history job identifier.
func WithJobID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, jobIDKey, id)
}

// JobIDFromContext extracts the history job identifier if present.
func JobIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(jobIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithCommand annotates context with the CLI command being processed.
func WithCommand(ctx context.Context, command string) context.Context {
	if command == "" {
		return ctx
	}
	return context.WithValue(ctx, commandKey, command)
}

// CommandFromContext returns the command name if present.
func CommandFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(commandKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
