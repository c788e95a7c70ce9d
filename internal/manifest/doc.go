// Package manifest records conversion runs in SQLite.
//
// Every swbd conversion command opens a run, records one row per processed
// input file (section, sentence and token counts, outcome), and closes the
// run with a final status. `swbd runs` reads the same tables back.
//
// The database lives in the state directory and is treated as an audit log
// of what produced the files in an output directory. Schema changes bump the
// version in schema.go; additive changes go in migrations/.
package manifest
