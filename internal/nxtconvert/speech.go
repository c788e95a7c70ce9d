package nxtconvert

import (
	"strings"

	"swbd/internal/ptb"
	"swbd/internal/textutil"
)

// emptyTree is sent to the converter in place of a sentence with no words
// left, so converter output stays aligned with the input sentences.
const emptyTree = "(S (SYM -EMPTY-) )"

// parentheticals are PRN yields removed from the fluent tree.
var parentheticals = [][]string{{"you", "know"}, {"i", "mean"}}

// Word is a spoken word as it will be written out.
type Word struct {
	ID   string
	Text string
	POS  string
	// DFL is "<speaker><turn>|<edited 1/0>|<start>|<end>".
	DFL string
}

// Speechify removes question marks, punctuation, traces, and fragments and
// lower-cases the remaining words. Words attached directly to the root are
// left alone.
func Speechify(tree *ptb.Tree) {
	for _, w := range tree.Words() {
		if w.Parent() == nil || w.Parent().Parent() == nil {
			continue
		}
		if w.Text == "?" || w.IsPunct() || w.IsTrace() || w.IsPartial() {
			w.Prune()
		}
		w.Text = textutil.Lower(w.Text)
	}
}

// Snapshot records the words of tree with their disfluency column.
func Snapshot(tree *ptb.Tree) []Word {
	words := tree.Words()
	out := make([]Word, len(words))
	for i, w := range words {
		out[i] = Word{ID: w.ID, Text: w.Text, POS: w.Label, DFL: dfl(tree, w)}
	}
	return out
}

func dfl(tree *ptb.Tree, w *ptb.Node) string {
	return strings.Join([]string{
		tree.Speaker + tree.Turn,
		textutil.Ternary(w.IsEdited(), "1", "0"),
		w.Start,
		w.End,
	}, "|")
}

// Fluent removes EDITED constituents, UH fillers, and parenthetical
// "you know" and "i mean", then prunes constituents left without words.
func Fluent(tree *ptb.Tree) {
	root := tree.Root
	for _, node := range root.DepthFirst() {
		if node.Label == "EDITED" {
			node.Prune()
		}
	}
	for _, w := range root.Words() {
		if w.Label == "UH" {
			w.Prune()
		}
	}
	for _, node := range root.DepthFirst() {
		if node.Label == "PRN" && isParenthetical(node) {
			node.Prune()
		}
	}
	tree.PruneEmpty()
}

func isParenthetical(node *ptb.Node) bool {
	words := node.Words()
	for _, phrase := range parentheticals {
		if len(words) != len(phrase) {
			continue
		}
		match := true
		for i, w := range words {
			if w.Text != phrase[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// TreeString renders tree for the converter.
func TreeString(tree *ptb.Tree) string {
	if len(tree.Words()) == 0 {
		return emptyTree
	}
	return tree.String()
}
