// Package taggedpos turns the output of a joint disfluency and POS tagger
// into a fluent word/POS file for one treebank section.
//
// The tagger output is a flat token stream. It is walked alongside the
// treebank words, dropping tokens the tagger marked as disfluent and the
// fillers uh and um, so that each printed line is the tagger's view of one
// treebank sentence.
package taggedpos
