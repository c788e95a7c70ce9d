package dps

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const header = "*x* header *x*\n\n===============\n\n"

// Writer renders tokens back into .dps markup. Reparandum and Repair are taken
// as the bracketed span and its repair; Tag opens a {T ... } bracket.
type Writer struct {
	w           *bufio.Writer
	sent        []string
	openRM      bool
	openRR      bool
	tag         string
	lastSpeaker string
	haveSpeaker bool
	started     bool
	err         error
}

// NewWriter returns a Writer that writes to w. The header is written with the
// first token or on Close.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), tag: NoTag}
}

func (w *Writer) start() {
	if w.started {
		return
	}
	w.started = true
	w.writeString(header)
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.WriteString(s)
}

// Add appends a token to the current sentence.
func (w *Writer) Add(tok Token) {
	w.start()
	if !w.haveSpeaker || tok.Speaker != w.lastSpeaker {
		if w.haveSpeaker {
			w.writeString("\n")
		}
		w.writeString(fmt.Sprintf("Speaker%s/SYM ./.\n", tok.Speaker))
		w.lastSpeaker = tok.Speaker
		w.haveSpeaker = true
	}
	tag := tok.Tag
	if tag == "" {
		tag = NoTag
	}
	if w.openRM && !tok.Reparandum {
		w.sent = append(w.sent, "+")
		w.openRM = false
		w.openRR = true
	}
	if w.tag != NoTag && tag != w.tag {
		w.sent = append(w.sent, "}")
		w.tag = NoTag
	}
	if w.openRR && !tok.Repair {
		w.sent = append(w.sent, "]")
		w.openRR = false
	}
	if tag != NoTag && tag != w.tag {
		w.sent = append(w.sent, "{"+tag)
		w.tag = tag
	}
	if tok.Reparandum && !w.openRM {
		w.sent = append(w.sent, "[")
		w.openRM = true
	}
	w.sent = append(w.sent, tok.Word+"/"+tok.POS)
}

// EndSentence writes the current sentence followed by the E_S marker.
func (w *Writer) EndSentence() {
	w.start()
	w.writeString(strings.Join(w.sent, " ") + " E_S\n")
	w.sent = w.sent[:0]
	w.openRM = false
	w.openRR = false
	w.tag = NoTag
}

// Close writes any unfinished sentence and flushes the output.
func (w *Writer) Close() error {
	w.start()
	if len(w.sent) > 0 {
		w.EndSentence()
	}
	if w.err != nil {
		return fmt.Errorf("write dps: %w", w.err)
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("write dps: %w", err)
	}
	return nil
}
