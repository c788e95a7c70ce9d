// Package logs reads the per-run JSON log files written under paths.log_dir.
//
// It returns the last N lines of a log with bounded memory, reports the
// byte offset it stopped at, and polls for appended lines so `swbd runs log
// --follow` can watch a conversion that is still running in another shell.
package logs
