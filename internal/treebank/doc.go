// Package treebank converts the Treebank-3 Switchboard release into
// disfluency-annotated CoNLL dependency files.
//
// Each .mrg file is repaired, stripped of CODE and header lines, and sent to
// the dependency converter. The converter output is joined, sentence by
// sentence, with the EDITED yields of the trees and with the .dps disfluency
// markup of the same conversation. Tokens that are not words of the fluent
// transcript (disfluency markers, fragments, punctuation, fillers) are then
// removed, multi-word discourse markers are merged, and the surviving
// sentences are written per split section as .conll, .pos, and .txt files.
package treebank
