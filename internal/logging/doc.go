// Package logging provides slog construction helpers and attribute aliases
// shared across the daemon and CLI. Loggers write to stderr plus an optional
// per-config log file, formatted as console text or JSON.
package logging
