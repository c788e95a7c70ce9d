package depsplit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"swbd/internal/conll"
	"swbd/internal/logging"
	"swbd/internal/manifest"
	"swbd/internal/outdir"
	"swbd/internal/pipeline"
	"swbd/internal/ptb"
	"swbd/internal/split"
	"swbd/internal/treebank"
)

// DepSuffix names the input files.
const DepSuffix = ".mrg.dep"

// OutputNames maps each legacy section to its output file.
var OutputNames = map[split.Section]string{
	split.Train: "train.txt",
	split.Dev:   "devr.txt",
	split.Test:  "testr.txt",
}

var sections = []split.Section{split.Train, split.Test, split.Dev}

// Options configures a dep-split run.
type Options struct {
	DepDir    string
	PTBDir    string
	Recorder  manifest.Sink
	Logger    *slog.Logger
	KeepGoing bool
}

// Files lists the .mrg.dep files in dir.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrNotFound, "dep-split", "list dependency files", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), DepSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// MarkEdits rewrites the last character of every dependency line with True
// when the token is edited and False otherwise. deps and trees must describe
// the same sentences.
func MarkEdits(deps string, trees []*ptb.Tree) (string, error) {
	var kept []*ptb.Tree
	for _, tree := range trees {
		if !tree.IsCode() {
			kept = append(kept, tree)
		}
	}
	blocks := conll.Blocks(deps)
	if len(blocks) != len(kept) {
		return "", pipeline.Wrap(pipeline.ErrAlignment, "dep-split", "align sentences",
			fmt.Sprintf("%d dependency sentences vs %d trees", len(blocks), len(kept)), nil)
	}
	var b strings.Builder
	for i, block := range blocks {
		edits := kept[i].EditedYield()
		for j, line := range strings.Split(block, "\n") {
			if line == "" {
				continue
			}
			flag := "False"
			if _, ok := edits[j]; ok {
				flag = "True"
			}
			b.WriteString(line[:len(line)-1])
			b.WriteString(flag)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Run writes every dependency file in the legacy ranges to its section file
// in out. Files whose sentence count does not match the treebank are skipped.
func Run(ctx context.Context, opts Options, out *outdir.Dir) (manifest.Summary, error) {
	var summary manifest.Summary
	logger := logging.NewComponentLogger(opts.Logger, "dep-split")

	files, err := Files(opts.DepDir)
	if err != nil {
		return summary, err
	}
	bySection, rejected := split.Divide(files, split.Legacy)
	for _, path := range rejected {
		logger.Debug("file outside legacy split", logging.String(logging.FieldFile, path))
	}

	for _, section := range sections {
		w, err := out.File(OutputNames[section])
		if err != nil {
			return summary, err
		}
		sctx := pipeline.WithSection(ctx, string(section))
		for _, entry := range bySection[section] {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			fctx := pipeline.WithFile(sctx, filepath.Base(entry.Path))
			result := splitFile(opts.PTBDir, entry, w)
			result.Section = string(section)

			flog := logging.WithContext(fctx, logger)
			keepGoing := opts.KeepGoing
			switch {
			case errors.Is(result.Err, pipeline.ErrAlignment):
				logging.WarnWithContext(flog, "skipping", "sentence_count_mismatch",
					logging.Error(result.Err),
					logging.String(logging.FieldErrorHint, pipeline.Hint(result.Err)))
				keepGoing = true
			case result.Err != nil:
				flog.Error("dependency file failed", logging.Error(result.Err),
					logging.String(logging.FieldErrorHint, pipeline.Hint(result.Err)))
			default:
				flog.Debug("dependency file written", logging.Int("sentences", result.SentencesOut))
			}
			if err := manifest.Report(fctx, opts.Recorder, &summary, result, keepGoing); err != nil {
				return summary, err
			}
		}
	}
	logger.Info("dependency split written",
		logging.Int("files", summary.OK),
		logging.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func splitFile(ptbDir string, entry split.Entry, w io.Writer) manifest.FileResult {
	res := manifest.FileResult{Path: entry.Path}
	deps, err := os.ReadFile(entry.Path)
	if err != nil {
		res.Err = pipeline.Wrap(pipeline.ErrNotFound, "dep-split", "read dependencies", entry.Path, err)
		return res
	}
	name := strings.TrimSuffix(filepath.Base(entry.Path), ".dep")
	mrgPath := filepath.Join(treebank.MRGRoot(ptbDir), split.TreebankSection(entry.Number), name)
	mrg, err := os.ReadFile(mrgPath)
	if err != nil {
		res.Err = pipeline.Wrap(pipeline.ErrNotFound, "dep-split", "read trees", mrgPath, err)
		return res
	}
	trees, err := ptb.Parse(ptb.Repair(ptb.Preprocess(string(mrg))))
	if err != nil {
		res.Err = pipeline.Wrap(pipeline.ErrValidation, "dep-split", "parse trees", mrgPath, err)
		return res
	}
	res.SentencesIn = len(trees)
	marked, err := MarkEdits(string(deps), trees)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", filepath.Base(entry.Path), err)
		return res
	}
	if _, err := io.WriteString(w, marked); err != nil {
		res.Err = fmt.Errorf("write %s: %w", filepath.Base(entry.Path), err)
		return res
	}
	res.SentencesOut = strings.Count(marked, "\n\n")
	for _, line := range strings.Split(marked, "\n") {
		if line != "" {
			res.TokensOut++
		}
	}
	return res
}
