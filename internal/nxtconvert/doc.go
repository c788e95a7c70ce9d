// Package nxtconvert converts the NXT release of Switchboard into
// speech-oriented dependency files.
//
// Each sentence is first reduced to what was spoken: punctuation, traces,
// word fragments, and question marks are dropped and the words lower-cased.
// That word list, with speaker turn, EDITED membership, and timings, is what
// gets written. A second, fluent copy of the tree (no EDITED material,
// fillers, or parenthetical "you know"/"i mean") is sent to the dependency
// converter, and its heads are mapped back onto the spoken words. Words the
// fluent tree dropped are attached to the preceding word with the label
// "erased".
package nxtconvert
