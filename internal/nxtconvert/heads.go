package nxtconvert

import (
	"fmt"

	"swbd/internal/conll"
	"swbd/internal/pipeline"
	"swbd/internal/ptb"
)

// ErasedLabel is the dependency label of spoken words missing from the
// fluent tree.
const ErasedLabel = "erased"

// TransferHeads maps the converter's analysis of the fluent words back onto
// the spoken words. Spoken words the fluent tree dropped are attached to the
// word before them (the root for the first word) with ErasedLabel. When the
// fluent tree is empty deps is the placeholder parse and is ignored.
func TransferHeads(spoken []Word, fluent []*ptb.Node, deps *conll.Sentence) (*conll.Sentence, error) {
	if len(fluent) > 0 && deps.Len() != len(fluent) {
		return nil, pipeline.Wrap(pipeline.ErrAlignment, "nxt", "transfer heads",
			fmt.Sprintf("converter returned %d tokens for %d words", deps.Len(), len(fluent)), nil)
	}
	newIdx := make(map[string]int, len(fluent))
	for i, w := range fluent {
		newIdx[w.ID] = i
	}
	newToOld := make(map[int]int, len(fluent))
	for i, w := range spoken {
		if j, ok := newIdx[w.ID]; ok {
			newToOld[j] = i
		}
	}

	out := &conll.Sentence{Tokens: make([]*conll.Token, 0, len(spoken))}
	for i, w := range spoken {
		tok := &conll.Token{ID: i + 1, Word: w.Text, POS: w.POS, Feats: w.DFL}
		j, ok := newIdx[w.ID]
		if !ok {
			tok.Head = i
			tok.Label = ErasedLabel
			out.Tokens = append(out.Tokens, tok)
			continue
		}
		dep := deps.Tokens[j]
		tok.Label = dep.Label
		if dep.Head != 0 {
			old, ok := newToOld[dep.Head-1]
			if !ok {
				return nil, pipeline.Wrap(pipeline.ErrValidation, "nxt", "transfer heads",
					fmt.Sprintf("word %s: head %d is not a spoken word", w.ID, dep.Head), nil)
			}
			tok.Head = old + 1
		}
		out.Tokens = append(out.Tokens, tok)
	}
	return out, nil
}
