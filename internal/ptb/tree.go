package ptb

// Tree is one sentence.
type Tree struct {
	Root *Node

	// Speaker and Turn are set for NXT sentences.
	ID      string
	Speaker string
	Turn    string
}

// Words returns the sentence's words in order.
func (t *Tree) Words() []*Node {
	if t == nil || t.Root == nil {
		return nil
	}
	return t.Root.Words()
}

// Top returns the first constituent under the root wrapper, or the root itself
// when the tree has no wrapper.
func (t *Tree) Top() *Node {
	if t.Root == nil {
		return nil
	}
	if t.Root.Label == "" && len(t.Root.Children) > 0 {
		return t.Root.Children[0]
	}
	return t.Root
}

// IsCode reports whether the sentence is a CODE annotation line.
func (t *Tree) IsCode() bool {
	top := t.Top()
	return top != nil && top.Label == "CODE"
}

// EditedYield returns the positions, among the sentence's non-trace words, of
// every word under an EDITED node.
func (t *Tree) EditedYield() map[int]struct{} {
	edits := make(map[int]struct{})
	positions := make(map[*Node]int)
	for _, w := range t.Words() {
		if w.IsTrace() {
			continue
		}
		positions[w] = len(positions)
	}
	for _, node := range t.Root.BreadthFirst() {
		if node.BaseLabel() != "EDITED" {
			continue
		}
		for _, w := range node.Words() {
			if pos, ok := positions[w]; ok {
				edits[pos] = struct{}{}
			}
		}
	}
	return edits
}

// PruneEmpty removes constituents that dominate no words.
func (t *Tree) PruneEmpty() {
	if t.Root != nil {
		t.Root.PruneEmpty()
	}
}

// String renders the sentence on one line.
func (t *Tree) String() string {
	if t.Root == nil {
		return ""
	}
	return t.Root.String()
}
