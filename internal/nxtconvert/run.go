package nxtconvert

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"swbd/internal/conll"
	"swbd/internal/converter"
	"swbd/internal/logging"
	"swbd/internal/manifest"
	"swbd/internal/nxt"
	"swbd/internal/outdir"
	"swbd/internal/pipeline"
	"swbd/internal/ptb"
	"swbd/internal/split"
)

// Sections is the output order of the split sections.
var Sections = []split.Section{split.Train, split.Dev, split.Dev2, split.Test}

// Options configures an NXT conversion.
type Options struct {
	Layout    nxt.Layout
	Policy    split.Policy
	Converter converter.Converter
	Recorder  manifest.Sink
	Logger    *slog.Logger
	// Numbers restricts the run to these conversations. Empty means every
	// conversation found in the syntax layer.
	Numbers   []int
	KeepGoing bool
}

// Run converts every conversation and writes <section>.conll, .pos, and
// .txt into out.
func Run(ctx context.Context, opts Options, out *outdir.Dir) (manifest.Summary, error) {
	var summary manifest.Summary
	if opts.Converter == nil {
		return summary, pipeline.Wrap(pipeline.ErrConfiguration, "nxt", "run", "no dependency converter", nil)
	}
	logger := logging.NewComponentLogger(opts.Logger, "nxt")

	numbers := opts.Numbers
	if len(numbers) == 0 {
		found, err := nxt.Discover(opts.Layout.SyntaxDir)
		if err != nil {
			return summary, err
		}
		numbers = found
	}
	bySection := make(map[split.Section][]int)
	for _, n := range numbers {
		section := opts.Policy.Assign(n)
		bySection[section] = append(bySection[section], n)
	}
	logger.Info("nxt conversations found", logging.Int("conversations", len(numbers)))

	for _, section := range Sections {
		conllW, err := out.Section(string(section), "conll")
		if err != nil {
			return summary, err
		}
		posW, err := out.Section(string(section), "pos")
		if err != nil {
			return summary, err
		}
		txtW, err := out.Section(string(section), "txt")
		if err != nil {
			return summary, err
		}
		sctx := pipeline.WithSection(ctx, string(section))
		for _, n := range bySection[section] {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			name := fmt.Sprintf("sw%d", n)
			fctx := pipeline.WithFile(sctx, name)
			result := manifest.FileResult{Path: opts.Layout.SyntaxPath(n, "A"), Section: string(section)}
			converted, err := convertConversation(fctx, opts, n)
			if converted != nil {
				result.SentencesIn = converted.SentencesIn
			}
			if err == nil {
				err = write(conllW, posW, txtW, converted.Sentences)
			}
			if err != nil {
				result.Err = err
			} else {
				result.SentencesOut = len(converted.Sentences)
				result.TokensOut = converted.Tokens()
			}

			flog := logging.WithContext(fctx, logger)
			if result.Err != nil {
				flog.Error("conversation conversion failed", logging.Error(result.Err),
					logging.String(logging.FieldErrorHint, pipeline.Hint(result.Err)))
			} else {
				flog.Info("conversation converted",
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

func convertConversation(ctx context.Context, opts Options, number int) (*Result, error) {
	conv, err := nxt.LoadConversation(opts.Layout, number)
	if err != nil {
		return nil, err
	}
	trees := make([]*ptb.Tree, len(conv.Sentences))
	for i, sent := range conv.Sentences {
		trees[i] = sent.Tree
	}
	return ConvertTrees(ctx, opts.Converter, fmt.Sprintf("sw%d", number), trees)
}

func write(conllW, posW, txtW io.Writer, sents []*conll.Sentence) error {
	if err := conll.WriteSentences(conllW, sents); err != nil {
		return err
	}
	if err := conll.WritePOS(posW, sents); err != nil {
		return err
	}
	return conll.WriteText(txtW, sents)
}
