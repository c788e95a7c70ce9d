package ptb

import "strings"

// Node is one constituent or preterminal in a tree.
type Node struct {
	Label    string
	Text     string
	Children []*Node

	// ID identifies a word across annotation layers. Trees read from
	// brackets number their words from zero; NXT trees use terminal ids.
	ID    string
	Start string
	End   string

	parent *Node
}

// NewNode builds a constituent with the given children attached.
func NewNode(label string, children ...*Node) *Node {
	n := &Node{Label: label}
	for _, child := range children {
		n.Append(child)
	}
	return n
}

// NewWord builds a preterminal.
func NewWord(pos, text string) *Node {
	return &Node{Label: pos, Text: text}
}

// Append attaches child as the last child of n.
func (n *Node) Append(child *Node) {
	if child == nil {
		return
	}
	child.parent = n
	n.Children = append(n.Children, child)
}

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// IsWord reports whether n is a preterminal.
func (n *Node) IsWord() bool { return len(n.Children) == 0 && n.Text != "" }

// BaseLabel strips function tags and indices (NP-SBJ-1 becomes NP). Labels
// that start with a dash, such as -NONE- and -DFL-, are returned unchanged.
func (n *Node) BaseLabel() string {
	return baseLabel(n.Label)
}

func baseLabel(label string) string {
	if strings.HasPrefix(label, "-") {
		return label
	}
	if idx := strings.IndexAny(label, "-="); idx > 0 {
		return label[:idx]
	}
	return label
}

// IsTrace reports whether n is an empty element.
func (n *Node) IsTrace() bool { return n.Label == "-NONE-" }

// IsPunct reports whether n is a punctuation preterminal.
func (n *Node) IsPunct() bool {
	_, ok := punctTags[n.Label]
	return ok
}

// IsPartial reports whether n is a word fragment.
func (n *Node) IsPartial() bool {
	return n.Label == "XX" || strings.HasSuffix(n.Text, "-")
}

var punctTags = map[string]struct{}{
	",": {}, ":": {}, ".": {}, ";": {}, "``": {}, "''": {},
	"RRB": {}, "LRB": {}, "-RRB-": {}, "-LRB-": {},
}

// PunctTags returns the part-of-speech tags treated as punctuation.
func PunctTags() []string {
	out := make([]string, 0, len(punctTags))
	for tag := range punctTags {
		out = append(out, tag)
	}
	return out
}

// HasAncestor reports whether any ancestor of n has the given base label.
func (n *Node) HasAncestor(label string) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p.BaseLabel() == label {
			return true
		}
	}
	return false
}

// IsEdited reports whether n lies under an EDITED constituent.
func (n *Node) IsEdited() bool { return n.HasAncestor("EDITED") }

// Words returns the preterminals under n in order.
func (n *Node) Words() []*Node {
	var out []*Node
	n.collectWords(&out)
	return out
}

func (n *Node) collectWords(out *[]*Node) {
	if n.IsWord() {
		*out = append(*out, n)
		return
	}
	for _, child := range n.Children {
		child.collectWords(out)
	}
}

// DepthFirst returns n and its descendants in pre-order.
func (n *Node) DepthFirst() []*Node {
	out := []*Node{n}
	for _, child := range n.Children {
		out = append(out, child.DepthFirst()...)
	}
	return out
}

// BreadthFirst returns n and its descendants in level order.
func (n *Node) BreadthFirst() []*Node {
	out := []*Node{n}
	for i := 0; i < len(out); i++ {
		out = append(out, out[i].Children...)
	}
	return out
}

// Prune detaches n from its parent. Pruning a root or an already detached
// node does nothing.
func (n *Node) Prune() {
	p := n.parent
	if p == nil {
		return
	}
	for i, child := range p.Children {
		if child == n {
			p.Children = append(p.Children[:i:i], p.Children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// PruneEmpty removes every constituent under n that dominates no words.
func (n *Node) PruneEmpty() {
	for _, node := range n.DepthFirst() {
		if node != n && len(node.Words()) == 0 {
			node.Prune()
		}
	}
}

// String renders the subtree on a single line.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.Label)
	if n.IsWord() {
		b.WriteByte(' ')
		b.WriteString(n.Text)
		b.WriteByte(')')
		return
	}
	for _, child := range n.Children {
		b.WriteByte(' ')
		child.write(b)
	}
	b.WriteByte(')')
}
