// Command swbd converts the Switchboard corpus into dependency, POS, text,
// and timing files.
//
// Conversion commands take an exclusive lock on their output directory,
// record every run and processed file in the manifest under the state
// directory, and tee their log into a per-run file. `swbd runs` reads the
// manifest back.
package main
