package treebank

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"swbd/internal/config"
	"swbd/internal/conll"
	"swbd/internal/converter"
	"swbd/internal/dps"
	"swbd/internal/manifest"
	"swbd/internal/outdir"
	"swbd/internal/pipeline"
	"swbd/internal/split"
	"swbd/internal/testsupport"
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

const sampleDPS = `*x* Copyright (C) 1990 *x*

===============

SpeakerA1/SYM ./.
[ I/PRP ,/, + I/PRP ] think/VBP it/PRP 's/BES goo-/JJ good/JJ ./. E_S
{F uh/UH } {D you/PRP know/VBP } ./. E_S
you/PRP know/VBP it/PRP ./. E_S
`

var wantConll = strings.Join([]string{
	"1\ti\t-\tPRP\tPRP\tA1|-|1|RM|RM\t0\tdep\t-\t-",
	"2\ti\t-\tPRP\tPRP\tA1|-|0|RR|RR\t1\tdep\t-\t-",
	"3\tthink\t-\tVBP\tVBP\tA1|-|0|-|-\t2\tdep\t-\t-",
	"4\tit\t-\tPRP\tPRP\tA1|-|0|-|-\t3\tdep\t-\t-",
	"5\t's\t-\tVBZ\tVBZ\tA1|-|0|-|-\t4\tdep\t-\t-",
	"6\tgood\t-\tJJ\tJJ\tA1|-|0|-|-\t5\tdep\t-\t-",
	"",
	"1\tyou_know\t-\tMWE\tMWE\tA1|-|0|-|-\t0\tdep\t-\t-",
	"2\tit\t-\tPRP\tPRP\tA1|-|0|-|-\t1\tdep\t-\t-",
	"",
	"",
}, "\n")

type recorded []manifest.FileResult

func (r *recorded) Record(_ context.Context, result manifest.FileResult) error {
	*r = append(*r, result)
	return nil
}

func writeRelease(t *testing.T, root string, files map[string][2]string) {
	t.Helper()
	for rel, content := range files {
		mrg := filepath.Join(MRGRoot(root), rel)
		testsupport.WriteFile(t, mrg, content[0])
		if content[1] != "" {
			testsupport.WriteFile(t, dps.PathFor(mrg), content[1])
		}
	}
}

func defaultFilters() Filters {
	return FiltersFromConfig(config.Default().Filters)
}

func TestConvertFile(t *testing.T) {
	var calls []string
	conv := converter.Func(testsupport.DependencyStub(&calls))
	toks, err := dps.Read(strings.NewReader(sampleDPS))
	if err != nil {
		t.Fatalf("dps.Read returned error: %v", err)
	}

	result, err := ConvertFile(context.Background(), conv, "sw2005", sampleMRG, toks, defaultFilters())
	if err != nil {
		t.Fatalf("ConvertFile returned error: %v", err)
	}
	if len(calls) != 1 || calls[0] != "sw2005" {
		t.Fatalf("converter calls got %v", calls)
	}
	if result.Trees != 3 || len(result.Sentences) != 2 || result.Tokens() != 8 {
		t.Fatalf("unexpected result: trees=%d kept=%d tokens=%d", result.Trees, len(result.Sentences), result.Tokens())
	}
	var b strings.Builder
	if err := conll.WriteSentences(&b, result.Sentences); err != nil {
		t.Fatalf("WriteSentences returned error: %v", err)
	}
	if got := b.String(); got != wantConll {
		t.Fatalf("conll got\n%s\nwant\n%s", got, wantConll)
	}
}

func TestConvertFileSentenceCountMismatch(t *testing.T) {
	conv := converter.Func(func(context.Context, string, string) (string, error) {
		return "1\tI\t_\tPRP\tPRP\t_\t0\troot\t_\t_\n\n", nil
	})
	result, err := ConvertFile(context.Background(), conv, "sw2005", sampleMRG, nil, defaultFilters())
	if !errors.Is(err, pipeline.ErrAlignment) {
		t.Fatalf("expected alignment error, got %v", err)
	}
	if result == nil || result.Raw == "" {
		t.Fatal("expected raw converter output on alignment failure")
	}
}

func TestConvertFileDPSMismatch(t *testing.T) {
	conv := converter.Func(testsupport.DependencyStub(nil))
	toks := []dps.Token{{Word: "You", POS: "PRP"}}
	_, err := ConvertFile(context.Background(), conv, "sw2005", sampleMRG, toks, defaultFilters())
	var alignErr *conll.AlignmentError
	if !errors.As(err, &alignErr) || !errors.Is(err, pipeline.ErrAlignment) {
		t.Fatalf("expected AlignmentError, got %v", err)
	}
}

func TestConvertFilePropagatesConverterError(t *testing.T) {
	boom := pipeline.Wrap(pipeline.ErrExternalTool, "converter", "run", "java", errors.New("exit status 1"))
	conv := converter.Func(func(context.Context, string, string) (string, error) { return "", boom })
	if _, err := ConvertFile(context.Background(), conv, "sw2005", sampleMRG, nil, defaultFilters()); !errors.Is(err, pipeline.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestFiles(t *testing.T) {
	root := t.TempDir()
	writeRelease(t, root, map[string][2]string{
		"4/sw4004.mrg": {"", ""},
		"2/sw2005.mrg": {"", ""},
		"3/sw3001.mrg": {"", ""},
	})
	testsupport.WriteFile(t, filepath.Join(MRGRoot(root), "2", "README"), "")

	files, err := Files(root)
	if err != nil {
		t.Fatalf("Files returned error: %v", err)
	}
	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	if got := strings.Join(names, ","); got != "sw2005.mrg,sw3001.mrg,sw4004.mrg" {
		t.Fatalf("files got %s", got)
	}
	if _, err := Files(filepath.Join(root, "missing")); !errors.Is(err, pipeline.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRunWritesSections(t *testing.T) {
	root := t.TempDir()
	badDPS := strings.Replace(sampleDPS, "think/VBP", "thought/VBD", 1)
	writeRelease(t, root, map[string][2]string{
		"2/sw2005.mrg": {sampleMRG, sampleDPS},
		"4/sw4004.mrg": {sampleMRG, badDPS},
	})

	outPath := filepath.Join(t.TempDir(), "out")
	out, err := outdir.Open(outPath)
	if err != nil {
		t.Fatalf("outdir.Open returned error: %v", err)
	}
	var rec recorded
	summary, err := Run(context.Background(), Options{
		PTBDir:    root,
		Policy:    split.Standard(),
		Filters:   defaultFilters(),
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

	if summary.Files != 2 || summary.OK != 1 || summary.Skipped != 1 || summary.SentencesOut != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(rec) != 2 || rec[0].Section != "train" || rec[1].Section != "test" || rec[1].Err == nil {
		t.Fatalf("unexpected records %+v", rec)
	}

	read := func(name string) string { return testsupport.ReadFile(t, filepath.Join(outPath, name)) }
	if got := read("train.conll"); got != wantConll {
		t.Fatalf("train.conll got\n%s", got)
	}
	if got := read("train.pos"); got != "i/PRP i/PRP think/VBP it/PRP 's/VBZ good/JJ\nyou_know/MWE it/PRP\n" {
		t.Fatalf("train.pos got %q", got)
	}
	if got := read("train.txt"); got != "i i think it 's good\nyou_know it\n" {
		t.Fatalf("train.txt got %q", got)
	}
	if !strings.Contains(read("train.raw_conll"), "\\[") {
		t.Fatal("expected raw converter output in train.raw_conll")
	}
	if read("test.conll") != "" || read("test.raw_conll") == "" {
		t.Fatal("expected skipped test file to leave only raw output")
	}
	for _, name := range []string{"dev.conll", "dev2.txt"} {
		if got := read(name); got != "" {
			t.Fatalf("expected empty %s, got %q", name, got)
		}
	}
}

func TestRunStopsWithoutKeepGoing(t *testing.T) {
	root := t.TempDir()
	writeRelease(t, root, map[string][2]string{
		"2/sw2005.mrg": {sampleMRG, ""},
		"2/sw2010.mrg": {sampleMRG, sampleDPS},
	})
	out, err := outdir.Open(t.TempDir())
	if err != nil {
		t.Fatalf("outdir.Open returned error: %v", err)
	}
	defer out.Close()

	var rec recorded
	_, err = Run(context.Background(), Options{
		PTBDir:    root,
		Policy:    split.Standard(),
		Filters:   defaultFilters(),
		Converter: converter.Func(testsupport.DependencyStub(nil)),
		Recorder:  &rec,
	}, out)
	if !errors.Is(err, pipeline.ErrNotFound) {
		t.Fatalf("expected missing .dps error, got %v", err)
	}
	if len(rec) != 1 {
		t.Fatalf("expected the run to stop after the first file, got %d records", len(rec))
	}
}
