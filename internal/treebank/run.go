package treebank

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"swbd/internal/conll"
	"swbd/internal/converter"
	"swbd/internal/dps"
	"swbd/internal/logging"
	"swbd/internal/manifest"
	"swbd/internal/outdir"
	"swbd/internal/pipeline"
	"swbd/internal/split"
)

// TreebankDirs are the Treebank-3 Switchboard subdirectories that hold .mrg
// files.
var TreebankDirs = []string{"2", "3", "4"}

// Options configures a treebank conversion.
type Options struct {
	PTBDir    string
	Policy    split.Policy
	Filters   Filters
	Converter converter.Converter
	Recorder  manifest.Sink
	Logger    *slog.Logger
	// KeepGoing records a failed file and continues with the next one.
	KeepGoing bool
}

// MRGRoot returns <ptb>/parsed/mrg/swbd.
func MRGRoot(ptbDir string) string {
	return filepath.Join(ptbDir, "parsed", "mrg", "swbd")
}

// Files lists the .mrg files of the Treebank-3 Switchboard release. Missing
// numbered subdirectories are skipped; a missing release is an error.
func Files(ptbDir string) ([]string, error) {
	root := MRGRoot(ptbDir)
	if _, err := os.Stat(root); err != nil {
		return nil, pipeline.Wrap(pipeline.ErrNotFound, "treebank", "locate release", root, err)
	}
	var files []string
	for _, sub := range TreebankDirs {
		entries, err := os.ReadDir(filepath.Join(root, sub))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", sub, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mrg") {
				continue
			}
			files = append(files, filepath.Join(root, sub, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run converts every .mrg file and writes <section>.raw_conll, .conll, .pos,
// and .txt into out for each section.
func Run(ctx context.Context, opts Options, out *outdir.Dir) (manifest.Summary, error) {
	var summary manifest.Summary
	if opts.Converter == nil {
		return summary, pipeline.Wrap(pipeline.ErrConfiguration, "treebank", "run", "no dependency converter", nil)
	}
	logger := logging.NewComponentLogger(opts.Logger, "treebank")

	files, err := Files(opts.PTBDir)
	if err != nil {
		return summary, err
	}
	sections, rejected := split.Divide(files, opts.Policy.Assigner())
	for _, path := range rejected {
		logging.WarnWithContext(logger, "skipping file without conversation number", "unassigned_file",
			logging.String(logging.FieldFile, path))
	}
	logger.Info("treebank files found", logging.Int("files", len(files)))

	for _, section := range split.Sections {
		w, err := openSection(out, section)
		if err != nil {
			return summary, err
		}
		sctx := pipeline.WithSection(ctx, string(section))
		for _, entry := range sections[section] {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			fctx := pipeline.WithFile(sctx, filepath.Base(entry.Path))
			result := convertEntry(fctx, opts, entry.Path, w)
			result.Section = string(section)
			flog := logging.WithContext(fctx, logger)
			if result.Err != nil {
				flog.Error("file conversion failed", logging.Error(result.Err),
					logging.String(logging.FieldErrorHint, pipeline.Hint(result.Err)))
			} else {
				flog.Info("file converted",
					logging.Int("sentences", result.SentencesOut),
					logging.Int("tokens", result.TokensOut),
				)
			}
			if err := manifest.Report(fctx, opts.Recorder, &summary, result, opts.KeepGoing); err != nil {
				return summary, err
			}
		}
	}
	return summary, nil
}

type sectionWriters struct {
	raw, conll, pos, txt io.Writer
}

func openSection(out *outdir.Dir, section split.Section) (*sectionWriters, error) {
	var (
		w   sectionWriters
		err error
	)
	for _, target := range []struct {
		ext string
		dst *io.Writer
	}{
		{"raw_conll", &w.raw},
		{"conll", &w.conll},
		{"pos", &w.pos},
		{"txt", &w.txt},
	} {
		if *target.dst, err = out.Section(string(section), target.ext); err != nil {
			return nil, err
		}
	}
	return &w, nil
}

func convertEntry(ctx context.Context, opts Options, path string, w *sectionWriters) manifest.FileResult {
	res := manifest.FileResult{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = pipeline.Wrap(pipeline.ErrNotFound, "treebank", "read trees", path, err)
		return res
	}
	dpsPath := dps.PathFor(path)
	dpsFile, err := os.Open(dpsPath)
	if err != nil {
		res.Err = pipeline.Wrap(pipeline.ErrNotFound, "treebank", "read disfluency markup", dpsPath, err)
		return res
	}
	dpsTokens, err := dps.Read(dpsFile)
	dpsFile.Close()
	if err != nil {
		res.Err = pipeline.Wrap(pipeline.ErrValidation, "treebank", "read disfluency markup", dpsPath, err)
		return res
	}

	name := strings.TrimSuffix(filepath.Base(path), ".mrg")
	result, err := ConvertFile(ctx, opts.Converter, name, string(data), dpsTokens, opts.Filters)
	if result != nil {
		res.SentencesIn = result.Trees
		if _, werr := io.WriteString(w.raw, result.Raw); werr != nil && err == nil {
			err = fmt.Errorf("write raw output: %w", werr)
		}
	}
	if err != nil {
		res.Err = err
		return res
	}
	if err := writeResult(w, result); err != nil {
		res.Err = err
		return res
	}
	res.SentencesOut = len(result.Sentences)
	res.TokensOut = result.Tokens()
	return res
}

func writeResult(w *sectionWriters, result *Result) error {
	if err := conll.WriteSentences(w.conll, result.Sentences); err != nil {
		return err
	}
	if err := conll.WritePOS(w.pos, result.Sentences); err != nil {
		return err
	}
	return conll.WriteText(w.txt, result.Sentences)
}
