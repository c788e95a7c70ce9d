// Package ptb reads Penn Treebank bracketed trees and provides the node
// queries and mutations the conversions need: word yields, EDITED spans,
// pruning, and single-line rendering for the dependency converter.
//
// Leaves are preterminals: the node label is the part of speech and Text holds
// the word. Sentence roots read from .mrg files carry an empty label, matching
// the "( (S ...) )" wrapping of the Treebank-3 release.
package ptb
