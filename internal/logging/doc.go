// Package logging assembles the structured slog loggers used by the platter
// batch commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so every pipeline tags log lines
// the same way. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
package logging
