// Package notifications pushes progress and error events to an ntfy topic.
//
// Notifications are best-effort: callers log failures and move on. With no
// topic configured, NewService returns a noop implementation so call sites
// never branch.
package notifications
