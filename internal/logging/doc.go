// Package logging assembles structured slog loggers for wharf.
//
// It owns the console and JSON handlers, level parsing, and the context
// helpers that tag every daemon request with a correlation ID. Loggers write
// to stderr (and optionally a file) so command output on stdout stays clean
// for piping. A no-op logger is provided for tests and wiring code that
// cannot fail.
package logging
