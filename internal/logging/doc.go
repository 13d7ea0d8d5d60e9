// Package logging assembles structured slog loggers and formatting helpers used
// across the runtime.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so request handlers can tag log
// lines with correlation IDs and method names. Standard output is reserved for
// the line protocol, so loggers only ever write to stderr or log files. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
