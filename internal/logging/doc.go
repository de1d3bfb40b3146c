// Package logging assembles structured slog loggers and formatting helpers used
// across relabel.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes component-scoped helpers so the remapper, manifest
// builder and run orchestration tag their lines consistently. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
