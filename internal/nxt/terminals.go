package nxt

import (
	"strconv"
	"strings"
)

// Kind classifies terminals.
type Kind string

const (
	KindWord  Kind = "word"
	KindPunc  Kind = "punc"
	KindTrace Kind = "trace"
	KindSil   Kind = "sil"
)

// Terminal is one element of a terminals file.
type Terminal struct {
	ID    string
	Kind  Kind
	Start string
	End   string
	POS   string
	Orth  string

	// Sent and Num come from ids of the form s<Sent>_<Num>.
	Sent int
	Num  int

	// Pause is the gap to the next word. HasPause is false for the last word
	// of a file and for non-word terminals.
	Pause    float64
	HasPause bool
}

// Aligned reports whether a timing value is a real time.
func Aligned(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "n/a" && v != "non-aligned"
}

// IsPartial reports whether t is a word fragment.
func (t *Terminal) IsPartial() bool {
	return t.Kind == KindWord && (t.POS == "XX" || strings.HasSuffix(t.Orth, "-"))
}

// Terminals is the content of one terminals file in document order.
type Terminals struct {
	Items []*Terminal
	byID  map[string]*Terminal
	pos   map[string]int
}

// Get returns the terminal with the given id.
func (ts *Terminals) Get(id string) (*Terminal, bool) {
	if ts == nil {
		return nil, false
	}
	t, ok := ts.byID[id]
	return t, ok
}

// Index returns the document position of id.
func (ts *Terminals) Index(id string) int {
	if i, ok := ts.pos[id]; ok {
		return i
	}
	return -1
}

// ReadTerminals parses a terminals file.
func ReadTerminals(path, charsetName string) (*Terminals, error) {
	root, err := readDocument(path, charsetName)
	if err != nil {
		return nil, err
	}
	ts := &Terminals{byID: make(map[string]*Terminal), pos: make(map[string]int)}
	var lastWord *Terminal
	root.walk(func(e *element) {
		kind := Kind(e.XMLName.Local)
		switch kind {
		case KindWord, KindPunc, KindTrace, KindSil:
		default:
			return
		}
		if e.XMLName.Space != "" && e.XMLName.Space != niteNamespace {
			return
		}
		t := &Terminal{
			ID:    e.niteAttr("id"),
			Kind:  kind,
			Start: e.niteAttr("start"),
			End:   e.niteAttr("end"),
			POS:   e.attr("pos"),
			Orth:  e.attr("orth"),
		}
		t.Sent, t.Num = splitTerminalID(t.ID)
		switch kind {
		case KindPunc:
			text := strings.TrimSpace(e.Text)
			t.Orth = text
			t.POS = text
		case KindTrace:
			t.POS = "-NONE-"
			if t.Orth == "" {
				t.Orth = "*"
			}
		case KindWord:
			if lastWord != nil {
				lastWord.HasPause = true
				if Aligned(t.Start) && Aligned(lastWord.End) {
					start, errStart := strconv.ParseFloat(t.Start, 64)
					end, errEnd := strconv.ParseFloat(lastWord.End, 64)
					if errStart == nil && errEnd == nil {
						lastWord.Pause = start - end
					}
				}
			}
			lastWord = t
		}
		if t.ID != "" {
			ts.byID[t.ID] = t
			ts.pos[t.ID] = len(ts.Items)
		}
		ts.Items = append(ts.Items, t)
	})
	return ts, nil
}

func splitTerminalID(id string) (int, int) {
	if !strings.HasPrefix(id, "s") {
		return 0, 0
	}
	sent, num, ok := strings.Cut(id[1:], "_")
	if !ok {
		return 0, 0
	}
	s, err := strconv.Atoi(sent)
	if err != nil {
		return 0, 0
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return s, 0
	}
	return s, n
}
