// Package timings extracts per-word start and end times from the NXT
// terminals layer, grouped by the sentences of the syntax layer and split
// into the standard sections.
package timings
