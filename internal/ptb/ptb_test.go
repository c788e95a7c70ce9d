package ptb

import (
	"reflect"
	"strings"
	"testing"
)

const sampleMRG = `*x* header line *x*
*x* Copyright (C) 1990 *x*
( (CODE (SYM SpeakerA1) (. .) ))
( (S 
    (EDITED 
      (RM (-DFL- \[) )
      (NP-SBJ (PRP I) )
      (, ,)
      (IP (-DFL- \+) ))
    (NP-SBJ (PRP I) )
    (RS (-DFL- \]) )
    (VP (VBP think)
      (SBAR (-NONE- 0)
        (S (NP-SBJ (PRP it) )
          (VP (VBZ 's)
            (ADJP-PRD (JJ goo-) (JJ good) )))))
    (. .) (-DFL- E_S) ))
( (S (INTJ (UH uh)) (NP-SBJ (PRP you)) (VP (VBP know)) (. .) (-DFL- E_S) ))
`

func TestPreprocessDropsHeaderAndCode(t *testing.T) {
	out := Preprocess(sampleMRG)
	if strings.Contains(out, "*x*") || strings.Contains(out, "CODE") {
		t.Fatalf("expected header and CODE lines removed, got %q", out)
	}
	trees, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(trees) != 2 {
		t.Fatalf("got %d trees want 2", len(trees))
	}
}

func TestParseWordsAndLabels(t *testing.T) {
	trees, err := Parse(sampleMRG[strings.Index(sampleMRG, "( (CODE"):])
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(trees) != 3 {
		t.Fatalf("got %d trees want 3", len(trees))
	}
	if !trees[0].IsCode() || trees[1].IsCode() {
		t.Fatal("expected only the first tree to be CODE")
	}

	var texts []string
	for _, w := range trees[1].Words() {
		texts = append(texts, w.Text)
	}
	want := []string{`\[`, "I", ",", `\+`, "I", `\]`, "think", "0", "it", "'s", "goo-", "good", ".", "E_S"}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("words got %v want %v", texts, want)
	}
	words := trees[1].Words()
	if words[3].ID != "3" {
		t.Fatalf("word id got %q want %q", words[3].ID, "3")
	}
	if !words[7].IsTrace() || !words[2].IsPunct() || !words[10].IsPartial() {
		t.Fatal("unexpected word classification")
	}
	if !words[1].IsEdited() || words[4].IsEdited() {
		t.Fatal("unexpected EDITED membership")
	}
}

func TestBaseLabel(t *testing.T) {
	tests := map[string]string{
		"NP-SBJ-1": "NP",
		"NP=2":     "NP",
		"-NONE-":   "-NONE-",
		"-DFL-":    "-DFL-",
		"EDITED":   "EDITED",
	}
	for label, want := range tests {
		if got := (&Node{Label: label}).BaseLabel(); got != want {
			t.Fatalf("BaseLabel(%q) got %q want %q", label, got, want)
		}
	}
}

func TestEditedYieldSkipsTraces(t *testing.T) {
	trees, err := Parse(`( (S (EDITED (NP (-NONE- *) (PRP I)) (VBD was)) (NP (PRP I)) (VP (VBP am)) ))`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	got := trees[0].EditedYield()
	want := map[int]struct{}{0: {}, 1: {}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("edited yield got %v want %v", got, want)
	}
}

func TestPruneAndString(t *testing.T) {
	trees, err := Parse(`( (S (INTJ (UH uh)) (NP-SBJ (PRP i)) (VP (VBP know)) ))`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	tree := trees[0]
	for _, w := range tree.Words() {
		if w.Label == "UH" {
			w.Prune()
		}
	}
	tree.PruneEmpty()

	want := "( (S (NP-SBJ (PRP i)) (VP (VBP know))))"
	if got := tree.String(); got != want {
		t.Fatalf("String() got %q want %q", got, want)
	}
	tree.Root.Prune()
	if tree.Root.Parent() != nil {
		t.Fatal("root should stay detached")
	}
}

func TestPruneEmptyKeepsRoot(t *testing.T) {
	root := NewNode("", NewNode("S", NewNode("EDITED", NewWord("PRP", "i"))))
	root.Children[0].Children[0].Prune()
	tree := &Tree{Root: root}
	tree.PruneEmpty()
	if len(tree.Words()) != 0 || tree.Root == nil {
		t.Fatal("expected an empty tree with its root intact")
	}
	if got := tree.String(); got != "()" {
		t.Fatalf("String() got %q", got)
	}
}

func TestTraversalOrder(t *testing.T) {
	root := NewNode("S", NewNode("NP", NewWord("PRP", "i")), NewNode("VP", NewWord("VBP", "know")))
	var depth, breadth []string
	for _, n := range root.DepthFirst() {
		depth = append(depth, n.Label)
	}
	for _, n := range root.BreadthFirst() {
		breadth = append(breadth, n.Label)
	}
	if want := []string{"S", "NP", "PRP", "VP", "VBP"}; !reflect.DeepEqual(depth, want) {
		t.Fatalf("depth first got %v want %v", depth, want)
	}
	if want := []string{"S", "NP", "VP", "PRP", "VBP"}; !reflect.DeepEqual(breadth, want) {
		t.Fatalf("breadth first got %v want %v", breadth, want)
	}
}

func TestRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "balanced",
			in:   "( (S (NP (PRP I)) ))\n",
			want: "( (S (NP (PRP I)) ))\n",
		},
		{
			name: "stray close",
			in:   "( (S (NP (PRP I)) )))\n( (S (UH uh) ))\n",
			want: "( (S (NP (PRP I)) ))\n( (S (UH uh) ))\n",
		},
		{
			name: "missing close",
			in:   "( (S (NP (PRP I)) \n( (S (UH uh) ))\n",
			want: "( (S (NP (PRP I)) ))\n( (S (UH uh) ))\n",
		},
		{
			name: "unterminated final tree",
			in:   "( (S (UH uh)",
			want: "( (S (UH uh)))",
		},
	}
	for _, tc := range tests {
		if got := Repair(tc.in); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"(S (NP (PRP I)", "PRP I)", "(S ())", "(NP (PRP I) extra)"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
