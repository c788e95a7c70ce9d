package conll

import (
	"fmt"
	"io"

	"swbd/internal/dps"
)

// RemoveEdits drops the tokens under EDITED nodes from every sentence.
// Sentences left without tokens are removed.
func RemoveEdits(sents []*Sentence) ([]*Sentence, error) {
	kept := sents[:0]
	for i, sent := range sents {
		if err := sent.RemoveTokens(func(t *Token) bool { return t.IsEdit }); err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i+1, err)
		}
		if sent.Len() > 0 {
			kept = append(kept, sent)
		}
	}
	return kept, nil
}

// WriteDPS renders sentences as .dps markup, bracketing the .mrg edit spans.
func WriteDPS(w io.Writer, sents []*Sentence) error {
	dw := dps.NewWriter(w)
	for _, sent := range sents {
		for _, tok := range sent.Tokens {
			dw.Add(tok.MRGMarkup())
		}
		dw.EndSentence()
	}
	return dw.Close()
}
