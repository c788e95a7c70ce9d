package nxt

import (
	"strings"
)

// Turn is one speaker turn and the terminals it spans.
type Turn struct {
	ID   string
	Refs []Ref
}

// Number returns the turn id without its leading "t".
func (t Turn) Number() string {
	return strings.TrimPrefix(t.ID, "t")
}

// ReadTurns parses a turns file.
func ReadTurns(path, charsetName string) ([]Turn, error) {
	root, err := readDocument(path, charsetName)
	if err != nil {
		return nil, err
	}
	var (
		turns   []Turn
		walkErr error
	)
	root.walk(func(e *element) {
		if walkErr != nil || e.XMLName.Local != "turn" {
			return
		}
		turn := Turn{ID: e.niteAttr("id")}
		for i := range e.Children {
			child := &e.Children[i]
			if !child.isNite("child") {
				continue
			}
			ref, err := ParseHref(child.attr("href"))
			if err != nil {
				walkErr = err
				return
			}
			turn.Refs = append(turn.Refs, ref)
		}
		turns = append(turns, turn)
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return turns, nil
}

// AssignTurns maps every terminal id covered by turns to its turn number.
// Spans are expanded in the document order of ts.
func AssignTurns(turns []Turn, ts *Terminals) map[string]string {
	out := make(map[string]string)
	for _, turn := range turns {
		num := turn.Number()
		for _, ref := range turn.Refs {
			if ref.To == "" {
				out[ref.From] = num
				continue
			}
			from, to := ts.Index(ref.From), ts.Index(ref.To)
			if from < 0 || to < from {
				continue
			}
			for _, t := range ts.Items[from : to+1] {
				out[t.ID] = num
			}
		}
	}
	return out
}
