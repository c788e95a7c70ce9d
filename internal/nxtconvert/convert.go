package nxtconvert

import (
	"context"
	"fmt"
	"strings"

	"swbd/internal/conll"
	"swbd/internal/converter"
	"swbd/internal/pipeline"
	"swbd/internal/ptb"
)

// Result is the conversion of one conversation.
type Result struct {
	Raw         string
	SentencesIn int
	// Sentences holds one entry per input sentence that kept any spoken
	// words.
	Sentences []*conll.Sentence
}

// Tokens counts the tokens of the converted sentences.
func (r *Result) Tokens() int {
	n := 0
	for _, sent := range r.Sentences {
		n += sent.Len()
	}
	return n
}

// ConvertTrees speechifies trees, converts their fluent versions in a single
// converter call named name, and transfers the heads back. The trees are
// modified.
func ConvertTrees(ctx context.Context, conv converter.Converter, name string, trees []*ptb.Tree) (*Result, error) {
	spoken := make([][]Word, len(trees))
	input := make([]string, len(trees))
	for i, tree := range trees {
		Speechify(tree)
		spoken[i] = Snapshot(tree)
		Fluent(tree)
		input[i] = TreeString(tree)
	}

	raw, err := conv.Convert(ctx, name, strings.Join(input, "\n"))
	if err != nil {
		return nil, err
	}
	result := &Result{Raw: raw, SentencesIn: len(trees)}
	blocks := converter.SplitSentences(raw)
	if len(blocks) != len(trees) {
		return result, pipeline.Wrap(pipeline.ErrAlignment, "nxt", "align sentences",
			fmt.Sprintf("%s: converter returned %d sentences for %d trees", name, len(blocks), len(trees)), nil)
	}

	for i, block := range blocks {
		if len(spoken[i]) == 0 {
			continue
		}
		deps, err := conll.ParseSentence(block, conll.ParseConverterLine)
		if err != nil {
			return result, pipeline.Wrap(pipeline.ErrValidation, "nxt", "parse converter output",
				fmt.Sprintf("%s sentence %s", name, trees[i].ID), err)
		}
		sent, err := TransferHeads(spoken[i], trees[i].Words(), deps)
		if err != nil {
			return result, fmt.Errorf("%s sentence %s: %w", name, trees[i].ID, err)
		}
		result.Sentences = append(result.Sentences, sent)
	}
	return result, nil
}
