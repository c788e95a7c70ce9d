package taggedpos

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"swbd/internal/logging"
	"swbd/internal/manifest"
	"swbd/internal/pipeline"
	"swbd/internal/ptb"
	"swbd/internal/split"
	"swbd/internal/textutil"
	"swbd/internal/treebank"
)

// MinWords is the shortest sentence printed, counted after fillers are
// removed and multi-word expressions joined.
const MinWords = 2

var (
	fillers = textutil.SetOf("uh", "um")
	markup  = textutil.SetOf("-DFL-", "XX")
	mwes    = []struct{ first, second, joined string }{
		{"you", "know", "you_know"},
		{"i", "mean", "i_mean"},
	}
)

// Token is one line of tagger output.
type Token struct {
	Word string
	POS  string
	Tag  string
}

// Disfluent reports whether the tagger placed the token inside a reparandum.
func (t Token) Disfluent() bool {
	return strings.HasSuffix(t.Tag, "D")
}

// ReadTokens reads whitespace-separated "word pos ... tag" lines, skipping
// blank ones.
func ReadTokens(r io.Reader) ([]Token, error) {
	var out []Token
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, pipeline.Wrap(pipeline.ErrValidation, "tagged-pos", "read tagger output",
				fmt.Sprintf("line %d: expected word, pos, and tag", line), nil)
		}
		out = append(out, Token{Word: fields[0], POS: fields[1], Tag: fields[len(fields)-1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tagger output: %w", err)
	}
	return out, nil
}

// Aligner walks the tagger stream in step with treebank sentences.
type Aligner struct {
	tokens []Token
	cursor int
}

// NewAligner returns an Aligner positioned at the first token.
func NewAligner(tokens []Token) *Aligner {
	return &Aligner{tokens: tokens}
}

// Cursor returns the index of the next unread tagger token.
func (a *Aligner) Cursor() int { return a.cursor }

// Candidates returns the lower-cased words of tree the tagger is expected to
// have seen.
func Candidates(tree *ptb.Tree) []string {
	var words []string
	for _, w := range tree.Words() {
		if w.IsPunct() || w.IsTrace() || in(markup, w.Label) || strings.HasSuffix(w.Text, "-") {
			continue
		}
		words = append(words, textutil.Lower(w.Text))
	}
	return words
}

// Sentence aligns one tree. It returns the printable line and whether the
// sentence is long enough to print.
func (a *Aligner) Sentence(tree *ptb.Tree) (string, bool, error) {
	words := Candidates(tree)
	if len(words) == 0 {
		return "", false, nil
	}
	var fluent []Token
	for _, word := range words {
		for a.cursor < len(a.tokens) && a.tokens[a.cursor].Word != word {
			a.cursor++
		}
		if a.cursor >= len(a.tokens) {
			return "", false, pipeline.Wrap(pipeline.ErrAlignment, "tagged-pos", "align tagger output",
				fmt.Sprintf("ran out of tagger tokens looking for %q", word), nil)
		}
		tok := a.tokens[a.cursor]
		if !tok.Disfluent() && !in(fillers, tok.Word) {
			fluent = append(fluent, tok)
		}
		a.cursor++
	}
	if countWords(words) < MinWords {
		return "", false, nil
	}
	return render(fluent), true, nil
}

func in(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}

func countWords(words []string) int {
	var kept []string
	for _, w := range words {
		if !in(fillers, w) {
			kept = append(kept, w)
		}
	}
	n := len(kept)
	for i := 0; i+1 < len(kept); i++ {
		for _, mwe := range mwes {
			if kept[i] == mwe.first && kept[i+1] == mwe.second {
				n--
				i++
				break
			}
		}
	}
	return n
}

// render joins you/PRP know/VB[P] and i/PRP mean/VB[P] into a single UH
// token.
func render(tokens []Token) string {
	var parts []string
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) {
			if joined, ok := joinMWE(tokens[i], tokens[i+1]); ok {
				parts = append(parts, joined+"/UH")
				i++
				continue
			}
		}
		parts = append(parts, tokens[i].Word+"/"+tokens[i].POS)
	}
	return strings.Join(parts, " ")
}

func joinMWE(first, second Token) (string, bool) {
	if first.POS != "PRP" || (second.POS != "VB" && second.POS != "VBP") {
		return "", false
	}
	for _, mwe := range mwes {
		if first.Word == mwe.first && second.Word == mwe.second {
			return mwe.joined, true
		}
	}
	return "", false
}

// Options configures a tagged-pos run.
type Options struct {
	PTBDir   string
	Section  split.Section
	Recorder manifest.Sink
	Logger   *slog.Logger
}

// Run prints one line per sentence of the chosen section's treebank files.
// Files are assigned with the legacy dependency split.
func Run(ctx context.Context, opts Options, tokens []Token, w io.Writer) (manifest.Summary, error) {
	var summary manifest.Summary
	logger := logging.NewComponentLogger(opts.Logger, "tagged-pos")
	section := opts.Section
	if section == "" {
		section = split.Test
	}
	files, err := treebank.Files(opts.PTBDir)
	if err != nil {
		return summary, err
	}
	sections, _ := split.Divide(files, sectionOf)
	entries := sections[section]
	if len(entries) == 0 {
		return summary, pipeline.Wrap(pipeline.ErrNotFound, "tagged-pos", "select files",
			fmt.Sprintf("no treebank files in section %s under %s", section, opts.PTBDir), nil)
	}

	bw := bufio.NewWriter(w)
	aligner := NewAligner(tokens)
	sctx := pipeline.WithSection(ctx, string(section))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		fctx := pipeline.WithFile(sctx, filepath.Base(entry.Path))
		result := manifest.FileResult{Path: entry.Path, Section: string(section)}
		lines, trees, err := alignFile(aligner, entry.Path)
		result.SentencesIn = trees
		if err == nil {
			for _, line := range lines {
				if _, err = bw.WriteString(line + "\n"); err != nil {
					break
				}
				result.TokensOut += len(strings.Fields(line))
			}
			result.SentencesOut = len(lines)
		}
		result.Err = err
		if err != nil {
			logging.WithContext(fctx, logger).Error("tagged file failed", logging.Error(err),
				logging.Int("cursor", aligner.Cursor()),
				logging.String(logging.FieldErrorHint, pipeline.Hint(err)))
		}
		if err := manifest.Report(fctx, opts.Recorder, &summary, result, false); err != nil {
			return summary, err
		}
	}
	if err := bw.Flush(); err != nil {
		return summary, fmt.Errorf("write tagged pos: %w", err)
	}
	if rest := len(tokens) - aligner.Cursor(); rest > 0 {
		logging.WarnWithContext(logger, "tagger tokens left unaligned", "unaligned_tokens",
			logging.Int("tokens", rest))
	}
	logger.Info("tagged pos written",
		logging.Int("files", summary.Files),
		logging.Int("sentences", summary.SentencesOut),
	)
	return summary, nil
}

func alignFile(aligner *Aligner, path string) ([]string, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, pipeline.Wrap(pipeline.ErrNotFound, "tagged-pos", "read trees", path, err)
	}
	trees, err := ptb.Parse(ptb.Repair(ptb.Preprocess(string(data))))
	if err != nil {
		return nil, 0, pipeline.Wrap(pipeline.ErrValidation, "tagged-pos", "parse trees", path, err)
	}
	var lines []string
	for _, tree := range trees {
		if tree.IsCode() {
			continue
		}
		line, ok, err := aligner.Sentence(tree)
		if err != nil {
			return nil, len(trees), fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if ok {
			lines = append(lines, line)
		}
	}
	return lines, len(trees), nil
}

// sectionOf is the legacy split with the test range running through sw4154,
// the last conversation of the tagger's test set.
func sectionOf(n int) (split.Section, bool) {
	if n >= 4004 && n <= 4154 {
		return split.Test, true
	}
	return split.Legacy(n)
}
