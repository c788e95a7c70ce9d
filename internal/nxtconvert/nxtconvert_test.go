package nxtconvert

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"swbd/internal/conll"
	"swbd/internal/converter"
	"swbd/internal/manifest"
	"swbd/internal/nxt"
	"swbd/internal/outdir"
	"swbd/internal/pipeline"
	"swbd/internal/ptb"
	"swbd/internal/split"
	"swbd/internal/testsupport"
)

const spokenTree = `( (S (EDITED (NP-SBJ (PRP I)))
    (NP-SBJ (PRP I))
    (PRN (S (NP-SBJ (PRP you)) (VP (VBP know))))
    (INTJ (UH uh))
    (VP (VBP think)
      (SBAR (-NONE- 0) (S (NP-SBJ (PRP it)) (VP (VBZ 's) (ADJP (XX goo-) (JJ good))))))
    (. .)) )
( (S (INTJ (UH Uh)) (. ?)) )
( (S (. .)) )
`

func parseTrees(t *testing.T) []*ptb.Tree {
	t.Helper()
	trees, err := ptb.Parse(spokenTree)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	for i, tree := range trees {
		tree.Speaker = "A"
		tree.Turn = []string{"3", "4", "5"}[i]
		tree.ID = []string{"s1", "s2", "s3"}[i]
	}
	return trees
}

func TestSpeechifyAndSnapshot(t *testing.T) {
	trees := parseTrees(t)
	Speechify(trees[0])
	words := Snapshot(trees[0])

	var texts []string
	for _, w := range words {
		texts = append(texts, w.Text)
	}
	if got := strings.Join(texts, " "); got != "i i you know uh think it 's good" {
		t.Fatalf("spoken words got %q", got)
	}
	if words[0].DFL != "A3|1||" || words[1].DFL != "A3|0||" {
		t.Fatalf("unexpected disfluency columns %q %q", words[0].DFL, words[1].DFL)
	}

	Fluent(trees[0])
	texts = texts[:0]
	for _, w := range trees[0].Words() {
		texts = append(texts, w.Text)
	}
	if got := strings.Join(texts, " "); got != "i think it 's good" {
		t.Fatalf("fluent words got %q", got)
	}
	if strings.Contains(trees[0].String(), "INTJ") || strings.Contains(trees[0].String(), "PRN") {
		t.Fatalf("expected empty constituents pruned, got %s", trees[0].String())
	}
}

func TestTreeStringEmpty(t *testing.T) {
	trees := parseTrees(t)
	Speechify(trees[2])
	Fluent(trees[2])
	if got := TreeString(trees[2]); got != emptyTree {
		t.Fatalf("got %q want %q", got, emptyTree)
	}
}

func TestConvertTrees(t *testing.T) {
	var calls []string
	conv := converter.Func(testsupport.DependencyStub(&calls))
	result, err := ConvertTrees(context.Background(), conv, "sw2005", parseTrees(t))
	if err != nil {
		t.Fatalf("ConvertTrees returned error: %v", err)
	}
	if len(calls) != 1 || calls[0] != "sw2005" {
		t.Fatalf("expected one converter call, got %v", calls)
	}
	if result.SentencesIn != 3 || len(result.Sentences) != 2 || result.Tokens() != 10 {
		t.Fatalf("unexpected result: in=%d out=%d tokens=%d", result.SentencesIn, len(result.Sentences), result.Tokens())
	}

	var b strings.Builder
	if err := conll.WriteSentences(&b, result.Sentences); err != nil {
		t.Fatalf("WriteSentences returned error: %v", err)
	}
	want := strings.Join([]string{
		"1\ti\t-\tPRP\tPRP\tA3|1||\t0\terased\t-\t-",
		"2\ti\t-\tPRP\tPRP\tA3|0||\t0\tdep\t-\t-",
		"3\tyou\t-\tPRP\tPRP\tA3|0||\t2\terased\t-\t-",
		"4\tknow\t-\tVBP\tVBP\tA3|0||\t3\terased\t-\t-",
		"5\tuh\t-\tUH\tUH\tA3|0||\t4\terased\t-\t-",
		"6\tthink\t-\tVBP\tVBP\tA3|0||\t2\tdep\t-\t-",
		"7\tit\t-\tPRP\tPRP\tA3|0||\t6\tdep\t-\t-",
		"8\t's\t-\tVBZ\tVBZ\tA3|0||\t7\tdep\t-\t-",
		"9\tgood\t-\tJJ\tJJ\tA3|0||\t8\tdep\t-\t-",
		"",
		"1\tuh\t-\tUH\tUH\tA4|0||\t0\terased\t-\t-",
		"",
		"",
	}, "\n")
	if got := b.String(); got != want {
		t.Fatalf("conll got\n%s\nwant\n%s", got, want)
	}
}

func TestConvertTreesSentenceCountMismatch(t *testing.T) {
	conv := converter.Func(func(context.Context, string, string) (string, error) {
		return "1\ti\t_\tPRP\tPRP\t_\t0\troot\t_\t_\n\n", nil
	})
	if _, err := ConvertTrees(context.Background(), conv, "sw2005", parseTrees(t)); !errors.Is(err, pipeline.ErrAlignment) {
		t.Fatalf("expected alignment error, got %v", err)
	}
}

func TestTransferHeadsTokenMismatch(t *testing.T) {
	fluent := []*ptb.Node{{ID: "a", Text: "i", Label: "PRP"}}
	spoken := []Word{{ID: "a", Text: "i", POS: "PRP"}}
	if _, err := TransferHeads(spoken, fluent, &conll.Sentence{}); !errors.Is(err, pipeline.ErrAlignment) {
		t.Fatalf("expected alignment error, got %v", err)
	}
}

const (
	terminalsA = `<?xml version="1.0" encoding="UTF-8"?>
<nite:root xmlns:nite="http://nite.sourceforge.net/">
  <word nite:id="s1_1" nite:start="0.1" nite:end="0.3" pos="PRP" orth="I"/>
  <word nite:id="s1_2" nite:start="0.3" nite:end="0.5" pos="VBP" orth="know"/>
  <punc nite:id="s1_3">.</punc>
</nite:root>`
	syntaxA = `<?xml version="1.0" encoding="UTF-8"?>
<nite:root xmlns:nite="http://nite.sourceforge.net/">
  <parse nite:id="s1">
    <nt nite:id="s1_500" cat="S">
      <nt nite:id="s1_501" cat="NP-SBJ"><nite:child href="sw2005.A.terminals.xml#id(s1_1)"/></nt>
      <nt nite:id="s1_502" cat="VP"><nite:child href="sw2005.A.terminals.xml#id(s1_2)"/></nt>
      <nite:child href="sw2005.A.terminals.xml#id(s1_3)"/>
    </nt>
  </parse>
</nite:root>`
	terminalsB = `<?xml version="1.0" encoding="UTF-8"?>
<nite:root xmlns:nite="http://nite.sourceforge.net/">
  <word nite:id="s2_1" nite:start="1.0" nite:end="1.2" pos="UH" orth="Yeah"/>
</nite:root>`
	syntaxB = `<?xml version="1.0" encoding="UTF-8"?>
<nite:root xmlns:nite="http://nite.sourceforge.net/">
  <parse nite:id="s2">
    <nt nite:id="s2_500" cat="INTJ"><nite:child href="sw2005.B.terminals.xml#id(s2_1)"/></nt>
  </parse>
</nite:root>`
)

type recorded []manifest.FileResult

func (r *recorded) Record(_ context.Context, result manifest.FileResult) error {
	*r = append(*r, result)
	return nil
}

func TestRunWritesSections(t *testing.T) {
	root := t.TempDir()
	layout := nxt.Layout{
		TerminalsDir: filepath.Join(root, "terminals"),
		SyntaxDir:    filepath.Join(root, "syntax"),
	}
	testsupport.WriteFile(t, layout.TerminalsPath(2005, "A"), terminalsA)
	testsupport.WriteFile(t, layout.SyntaxPath(2005, "A"), syntaxA)
	testsupport.WriteFile(t, layout.TerminalsPath(2005, "B"), terminalsB)
	testsupport.WriteFile(t, layout.SyntaxPath(2005, "B"), syntaxB)
	// conversation 4600 has no B side and fails to load
	testsupport.WriteFile(t, layout.SyntaxPath(4600, "A"), syntaxA)

	outPath := t.TempDir()
	out, err := outdir.Open(outPath)
	if err != nil {
		t.Fatalf("outdir.Open returned error: %v", err)
	}
	var rec recorded
	summary, err := Run(context.Background(), Options{
		Layout:    layout,
		Policy:    split.Standard(),
		Converter: converter.Func(testsupport.DependencyStub(nil)),
		Recorder:  &rec,
		KeepGoing: true,
	}, out)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if summary.Files != 2 || summary.OK != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if rec[0].Section != "train" || rec[1].Section != "dev" || !errors.Is(rec[1].Err, pipeline.ErrNotFound) {
		t.Fatalf("unexpected records %+v", rec)
	}

	read := func(name string) string { return testsupport.ReadFile(t, filepath.Join(outPath, name)) }
	wantConll := "1\ti\t-\tPRP\tPRP\tA1|0|0.1|0.3\t0\tdep\t-\t-\n" +
		"2\tknow\t-\tVBP\tVBP\tA1|0|0.3|0.5\t1\tdep\t-\t-\n\n" +
		"1\tyeah\t-\tUH\tUH\tB2|0|1.0|1.2\t0\terased\t-\t-\n\n"
	if got := read("train.conll"); got != wantConll {
		t.Fatalf("train.conll got\n%s\nwant\n%s", got, wantConll)
	}
	if got := read("train.pos"); got != "i/PRP know/VBP\nyeah/UH\n" {
		t.Fatalf("train.pos got %q", got)
	}
	if got := read("train.txt"); got != "i know\nyeah\n" {
		t.Fatalf("train.txt got %q", got)
	}
	for _, name := range []string{"dev.conll", "dev2.pos", "test.txt"} {
		if got := read(name); got != "" {
			t.Fatalf("expected empty %s, got %q", name, got)
		}
	}
}
