package conll

import (
	"fmt"
	"strings"

	"swbd/internal/dps"
	"swbd/internal/pipeline"
	"swbd/internal/textutil"
)

const (
	disfluencyPOS = "-DFL-"
	erased        = "<erased>"
)

// Sentence is an ordered list of tokens with ids 1..n.
type Sentence struct {
	Tokens []*Token
}

// Len returns the number of tokens.
func (s *Sentence) Len() int { return len(s.Tokens) }

// Words returns the token words in order.
func (s *Sentence) Words() []string {
	out := make([]string, len(s.Tokens))
	for i, tok := range s.Tokens {
		out[i] = tok.Word
	}
	return out
}

// String renders the sentence as CoNLL lines without a trailing blank line.
func (s *Sentence) String() string {
	lines := make([]string, len(s.Tokens))
	for i, tok := range s.Tokens {
		lines[i] = tok.String()
	}
	return strings.Join(lines, "\n")
}

// AddEdits marks tokens whose zero-based position is in edits as edited and
// then derives the .mrg reparandum and repair spans.
func (s *Sentence) AddEdits(edits map[int]struct{}) {
	for _, tok := range s.Tokens {
		if _, ok := edits[tok.ID-1]; ok {
			tok.IsEdit = true
		}
	}
	s.MarkMRGEdits()
}

// MarkMRGEdits sets MRGRM and MRGRR from the \[ \+ \] tokens of the
// sentence. A \] without a preceding \+ closes the span and clears the .dps
// reparandum flag of the token before it. Its .mrg flags are left alone.
func (s *Sentence) MarkMRGEdits() {
	depth := 0
	sawIP := false
	for i, tok := range s.Tokens {
		if tok.Word == `\[` {
			depth++
			sawIP = false
		}
		if depth >= 1 {
			tok.MRGRM = true
		}
		if sawIP {
			tok.MRGRR = true
		}
		switch tok.Word {
		case `\+`:
			depth--
			sawIP = true
		case `\]`:
			if !sawIP {
				if i > 0 {
					s.Tokens[i-1].DPSRM = false
				}
				if depth >= 1 {
					depth--
				}
			}
			sawIP = false
		}
	}
}

// AddDPS aligns the sentence's non -DFL- tokens with the .dps tokens starting
// at offset and copies their speaker, tag, and edit spans. It returns the
// offset of the first unused .dps token.
func (s *Sentence) AddDPS(offset int, toks []dps.Token) (int, error) {
	i := 0
	for _, tok := range s.Tokens {
		if tok.POS == disfluencyPOS {
			continue
		}
		idx := offset + i
		if idx >= len(toks) {
			return offset, &AlignmentError{Offset: idx, Word: tok.Word}
		}
		d := toks[idx]
		if tok.Word != d.Word {
			return offset, &AlignmentError{Offset: idx, Word: tok.Word, Expected: d.Word}
		}
		i++
		tok.Speaker = d.Speaker
		tok.DPSTag = d.Tag
		tok.DPSRM = d.Reparandum
		tok.DPSRR = d.Repair
	}
	return offset + i, nil
}

// RemoveTokens deletes every token reject accepts. Tokens attached to a
// removed token are reattached to its nearest surviving ancestor, and the
// remaining tokens are renumbered from 1.
func (s *Sentence) RemoveTokens(reject func(*Token) bool) error {
	idMap := map[int]int{0: 0}
	rejected := make(map[int]bool)
	byID := make(map[int]*Token, len(s.Tokens))
	newID := 1
	for _, tok := range s.Tokens {
		byID[tok.ID] = tok
		idMap[tok.ID] = newID
		if reject(tok) {
			rejected[tok.ID] = true
		} else {
			newID++
		}
	}

	var chain []*Token
	for _, tok := range s.Tokens {
		head := tok.Head
		chain = chain[:0]
		for steps := 0; rejected[head]; steps++ {
			h, ok := byID[head]
			if !ok || steps > len(s.Tokens) {
				head = 0
				break
			}
			chain = append(chain, h)
			head = h.Head
		}
		tok.Head = head
		for _, h := range chain {
			h.Head = head
		}
	}

	kept := s.Tokens[:0]
	for _, tok := range s.Tokens {
		if !rejected[tok.ID] {
			kept = append(kept, tok)
		}
	}
	for i := len(kept); i < len(s.Tokens); i++ {
		s.Tokens[i] = nil
	}
	s.Tokens = kept

	n := len(s.Tokens)
	for _, tok := range s.Tokens {
		head, ok := idMap[tok.Head]
		if !ok {
			return pipeline.Wrap(pipeline.ErrValidation, "conll", "remove tokens",
				fmt.Sprintf("token %q points at missing head %d", tok.Word, tok.Head), nil)
		}
		tok.ID = idMap[tok.ID]
		tok.Head = head
		if tok.Head > n {
			tok.Head = 0
		}
		if tok.Head == tok.ID {
			tok.Head--
		}
	}
	return nil
}

// MergeMWE joins each adjacent pair of tokens spelling mwe (for example
// "you_know") into a single token. The dependency head of the pair keeps the
// merged word; it is tagged UH when it is a parataxis dependent or carries a
// disfluency tag and MWE otherwise.
func (s *Sentence) MergeMWE(mwe string) error {
	parts := strings.Split(mwe, "_")
	if len(parts) != 2 {
		return pipeline.Wrap(pipeline.ErrConfiguration, "conll", "merge mwe",
			fmt.Sprintf("%q is not a two-word expression", mwe), nil)
	}
	for i := 1; i < len(s.Tokens); i++ {
		prev, tok := s.Tokens[i-1], s.Tokens[i]
		if textutil.Lower(prev.Word) != parts[0] || textutil.Lower(tok.Word) != parts[1] {
			continue
		}
		var head, child *Token
		switch {
		case tok.Head == prev.ID:
			head, child = prev, tok
		case prev.Head == tok.ID:
			head, child = tok, prev
		case prev.Head == tok.Head:
			head, child = tok, prev
		default:
			return &MWEError{MWE: mwe, Position: i, Heads: [2]int{prev.Head, tok.Head}}
		}
		head.Word = mwe
		head.POS = textutil.Ternary(head.Label != "parataxis" && head.DPSTag == dps.NoTag, "MWE", "UH")
		child.Word = erased
	}
	return s.RemoveTokens(func(t *Token) bool { return t.Word == erased })
}

// LowerCase lower-cases every word.
func (s *Sentence) LowerCase() {
	for _, tok := range s.Tokens {
		tok.Word = textutil.Lower(tok.Word)
	}
}
