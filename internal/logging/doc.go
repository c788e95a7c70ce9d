// Package logging assembles structured slog loggers used by the swbd
// conversion commands.
//
// It owns the console and JSON handlers, level parsing, and output plumbing,
// and exposes context-aware helpers so conversion code can tag log lines with
// the run id, split section, and corpus file being processed. Each run can tee
// its output into a per-run log file under the configured log directory. A
// no-op logger is provided for tests and wiring code that cannot fail.
package logging
