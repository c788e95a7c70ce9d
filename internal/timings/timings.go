package timings

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"swbd/internal/logging"
	"swbd/internal/manifest"
	"swbd/internal/nxt"
	"swbd/internal/outdir"
	"swbd/internal/pipeline"
	"swbd/internal/split"
	"swbd/internal/textutil"
)

// Sections is the output order of the split files.
var Sections = []split.Section{split.Train, split.Dev, split.Dev2, split.Test}

// NoPause fills the pause column for the last word of a speaker's file.
const NoPause = "n/a"

// Options configures a timings extraction.
type Options struct {
	Layout   nxt.Layout
	Policy   split.Policy
	Recorder manifest.Sink
	Logger   *slog.Logger
	// Pauses adds the gap to the speaker's next word as a fifth column.
	Pauses    bool
	Numbers   []int
	KeepGoing bool
}

// Line is one timed word.
type Line struct {
	Word  string
	POS   string
	Start string
	End   string
	Pause string
}

func (l Line) format(pauses bool) string {
	s := l.Word + "\t" + l.POS + "\t" + l.Start + "\t" + l.End
	if pauses {
		s += "\t" + l.Pause
	}
	return s
}

// Sentences returns the timed words of each sentence of conv in sentence
// order. Only full words are kept; punctuation, traces, silences, and
// fragments are dropped.
func Sentences(conv *nxt.Conversation) [][]Line {
	out := make([][]Line, 0, len(conv.Sentences))
	for _, sent := range conv.Sentences {
		var lines []Line
		for _, ref := range sent.Parse.Refs {
			for _, t := range conv.Expand(ref) {
				if t.Kind != nxt.KindWord || t.IsPartial() {
					continue
				}
				lines = append(lines, Line{
					Word:  textutil.Lower(t.Orth),
					POS:   t.POS,
					Start: t.Start,
					End:   t.End,
					Pause: formatPause(t),
				})
			}
		}
		out = append(out, lines)
	}
	return out
}

func formatPause(t *nxt.Terminal) string {
	if !t.HasPause {
		return NoPause
	}
	return strconv.FormatFloat(t.Pause, 'f', -1, 64)
}

// Write emits each sentence followed by a blank line and ends the
// conversation with one more blank line.
func Write(w io.Writer, sents [][]Line, pauses bool) error {
	bw := bufio.NewWriter(w)
	for _, lines := range sents {
		for _, l := range lines {
			if _, err := bw.WriteString(l.format(pauses) + "\n"); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// Run writes the timings of every conversation to the bare section files
// train, dev, dev2, and test in out.
func Run(ctx context.Context, opts Options, out *outdir.Dir) (manifest.Summary, error) {
	var summary manifest.Summary
	logger := logging.NewComponentLogger(opts.Logger, "timings")

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

	for _, section := range Sections {
		w, err := out.Section(string(section), "")
		if err != nil {
			return summary, err
		}
		sctx := pipeline.WithSection(ctx, string(section))
		for _, n := range bySection[section] {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			fctx := pipeline.WithFile(sctx, fmt.Sprintf("sw%d", n))
			result := manifest.FileResult{Path: opts.Layout.TerminalsPath(n, "A"), Section: string(section)}
			conv, err := nxt.LoadTerminalsAndParses(opts.Layout, n)
			if err == nil {
				sents := Sentences(conv)
				result.SentencesIn = len(conv.Sentences)
				if err = Write(w, sents, opts.Pauses); err == nil {
					result.SentencesOut = len(sents)
					for _, lines := range sents {
						result.TokensOut += len(lines)
					}
				}
			}
			result.Err = err

			flog := logging.WithContext(fctx, logger)
			if result.Err != nil {
				flog.Error("timings extraction failed", logging.Error(result.Err),
					logging.String(logging.FieldErrorHint, pipeline.Hint(result.Err)))
			} else {
				flog.Debug("timings written", logging.Int("words", result.TokensOut))
			}
			if err := manifest.Report(fctx, opts.Recorder, &summary, result, opts.KeepGoing); err != nil {
				return summary, err
			}
		}
	}
	logger.Info("timings extracted",
		logging.Int("conversations", summary.OK),
		logging.Int("words", summary.TokensOut),
	)
	return summary, nil
}
