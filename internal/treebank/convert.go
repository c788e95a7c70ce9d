package treebank

import (
	"context"
	"fmt"

	"swbd/internal/conll"
	"swbd/internal/converter"
	"swbd/internal/dps"
	"swbd/internal/pipeline"
	"swbd/internal/ptb"
)

// Result is the conversion of one .mrg file.
type Result struct {
	// Raw is the unmodified converter output.
	Raw string
	// Trees is the number of sentences sent to the converter.
	Trees int
	// Sentences holds the cleaned sentences that passed the length filter.
	Sentences []*conll.Sentence
}

// Tokens counts the tokens of the kept sentences.
func (r *Result) Tokens() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, sent := range r.Sentences {
		n += sent.Len()
	}
	return n
}

// ConvertFile converts the trees of one .mrg file and joins them with the
// file's .dps tokens. name is the scratch file stem. On an alignment failure
// the returned Result still carries Raw.
func ConvertFile(ctx context.Context, conv converter.Converter, name, mrg string, dpsTokens []dps.Token, filters Filters) (*Result, error) {
	text := ptb.Repair(ptb.Preprocess(mrg))
	trees, err := ptb.Parse(text)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrValidation, "treebank", "parse trees", name, err)
	}
	edits := make([]map[int]struct{}, len(trees))
	for i, tree := range trees {
		edits[i] = tree.EditedYield()
	}

	raw, err := conv.Convert(ctx, name, text)
	if err != nil {
		return nil, err
	}
	result := &Result{Raw: raw, Trees: len(trees)}

	blocks := converter.SplitSentences(raw)
	if len(blocks) != len(trees) {
		return result, pipeline.Wrap(pipeline.ErrAlignment, "treebank", "align sentences",
			fmt.Sprintf("%s: converter returned %d sentences for %d trees", name, len(blocks), len(trees)), nil)
	}

	offset := 0
	for i, block := range blocks {
		sent, err := conll.ParseSentence(block, conll.ParseConverterLine)
		if err != nil {
			return result, pipeline.Wrap(pipeline.ErrValidation, "treebank", "parse converter output",
				fmt.Sprintf("%s sentence %d", name, i+1), err)
		}
		sent.AddEdits(edits[i])
		if offset, err = sent.AddDPS(offset, dpsTokens); err != nil {
			return result, fmt.Errorf("%s sentence %d: %w", name, i+1, err)
		}
		if err := filters.Clean(sent); err != nil {
			return result, fmt.Errorf("%s sentence %d: %w", name, i+1, err)
		}
		if filters.Keep(sent) {
			result.Sentences = append(result.Sentences, sent)
		}
	}
	return result, nil
}
