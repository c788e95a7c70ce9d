package taggedpos

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"swbd/internal/pipeline"
	"swbd/internal/split"
	"swbd/internal/testsupport"
	"swbd/internal/treebank"
)

const sampleMRG = `*x* Copyright (C) 1990 *x*
( (CODE (SYM SpeakerA1) (. .) ))
( (S 
    (EDITED (RM (-DFL- \[) ) (NP-SBJ (PRP I) ) (, ,) (IP (-DFL- \+) ))
    (NP-SBJ (PRP I) )
    (RS (-DFL- \]) )
    (VP (VBP think)
      (SBAR (-NONE- 0)
        (S (NP-SBJ (PRP it) )
          (VP (VBZ 's) (ADJP-PRD (JJ goo-) (JJ good) )))))
    (. .) (-DFL- E_S) ))
( (S (INTJ (UH uh)) (NP-SBJ (PRP you)) (VP (VBP know)) (. .) (-DFL- E_S) ))
( (S (NP-SBJ (PRP you)) (VP (VBP know) (NP (PRP it))) (. .) (-DFL- E_S) ))
`

const taggerOutput = `i PRP BD
, , O
i PRP O
think VBP O
it PRP O
's BES O
goo- JJ O
good JJ O
. . O

uh UH O
you PRP O
know VBP O

you PRP O
know VB O
it PRP O
`

func readTokens(t *testing.T, text string) []Token {
	t.Helper()
	tokens, err := ReadTokens(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ReadTokens returned error: %v", err)
	}
	return tokens
}

func writeRelease(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(treebank.MRGRoot(root), "4", "sw4004.mrg"), sampleMRG)
	testsupport.WriteFile(t, filepath.Join(treebank.MRGRoot(root), "2", "sw2005.mrg"), sampleMRG)
	return root
}

func TestReadTokens(t *testing.T) {
	tokens := readTokens(t, "know VBP x y BD\n\n")
	if len(tokens) != 1 || tokens[0] != (Token{Word: "know", POS: "VBP", Tag: "BD"}) || !tokens[0].Disfluent() {
		t.Fatalf("unexpected tokens %+v", tokens)
	}
	if _, err := ReadTokens(strings.NewReader("know VBP\n")); !errors.Is(err, pipeline.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   string
	}{
		{"you know", []Token{{Word: "you", POS: "PRP"}, {Word: "know", POS: "VBP"}}, "you_know/UH"},
		{"i mean", []Token{{Word: "i", POS: "PRP"}, {Word: "mean", POS: "VB"}, {Word: "it", POS: "PRP"}}, "i_mean/UH it/PRP"},
		{"other verb tag", []Token{{Word: "you", POS: "PRP"}, {Word: "know", POS: "VBZ"}}, "you/PRP know/VBZ"},
		{"not a pronoun", []Token{{Word: "you", POS: "NN"}, {Word: "know", POS: "VBP"}}, "you/NN know/VBP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(tt.tokens); got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		words []string
		want  int
	}{
		{[]string{"uh", "you", "know"}, 1},
		{[]string{"you", "know", "it"}, 2},
		{[]string{"i", "mean", "you", "know"}, 2},
		{[]string{"um"}, 0},
	}
	for _, tt := range tests {
		if got := countWords(tt.words); got != tt.want {
			t.Fatalf("countWords(%v) got %d want %d", tt.words, got, tt.want)
		}
	}
}

func TestRun(t *testing.T) {
	root := writeRelease(t)
	var b strings.Builder
	summary, err := Run(context.Background(), Options{PTBDir: root}, readTokens(t, taggerOutput), &b)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	want := "i/PRP think/VBP it/PRP 's/BES good/JJ\n" +
		"you_know/UH it/PRP\n"
	if b.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", b.String(), want)
	}
	if summary.Files != 1 || summary.OK != 1 || summary.SentencesOut != 2 || summary.TokensOut != 7 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestSectionOfCoversTaggerTestSet(t *testing.T) {
	tests := []struct {
		n    int
		want split.Section
		ok   bool
	}{
		{n: 2005, want: split.Train, ok: true},
		{n: 4003, ok: false},
		{n: 4004, want: split.Test, ok: true},
		{n: 4153, want: split.Test, ok: true},
		{n: 4154, want: split.Test, ok: true},
		{n: 4155, ok: false},
		{n: 4519, want: split.Dev, ok: true},
	}
	for _, tt := range tests {
		got, ok := sectionOf(tt.n)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("sectionOf(%d) got (%q, %v) want (%q, %v)", tt.n, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRunIncludesLastTestConversation(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(treebank.MRGRoot(root), "4", "sw4154.mrg"), sampleMRG)
	var b strings.Builder
	summary, err := Run(context.Background(), Options{PTBDir: root}, readTokens(t, taggerOutput), &b)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Files != 1 || !strings.HasPrefix(b.String(), "i/PRP think/VBP") {
		t.Fatalf("unexpected summary %+v and output %q", summary, b.String())
	}
}

func TestRunRunsOutOfTaggerTokens(t *testing.T) {
	root := writeRelease(t)
	var b strings.Builder
	summary, err := Run(context.Background(), Options{PTBDir: root, Section: split.Test},
		readTokens(t, "i PRP O\ni PRP O\nthink VBP O\n"), &b)
	if !errors.Is(err, pipeline.ErrAlignment) {
		t.Fatalf("expected alignment error, got %v", err)
	}
	if summary.Skipped != 1 || b.String() != "" {
		t.Fatalf("unexpected summary %+v and output %q", summary, b.String())
	}
}

func TestRunEmptySection(t *testing.T) {
	root := writeRelease(t)
	_, err := Run(context.Background(), Options{PTBDir: root, Section: split.Dev}, nil, &strings.Builder{})
	if !errors.Is(err, pipeline.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
