package conll

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineParser converts one CoNLL line into a token.
type LineParser func(string) (*Token, error)

// Blocks splits text into blank-line separated blocks, dropping empty ones.
func Blocks(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(strings.TrimSpace(text), "\n\n") {
		if block = strings.Trim(block, "\n"); strings.TrimSpace(block) != "" {
			out = append(out, block)
		}
	}
	return out
}

// ParseSentence parses one block of lines.
func ParseSentence(block string, parse LineParser) (*Sentence, error) {
	sent := &Sentence{}
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tok, err := parse(line)
		if err != nil {
			return nil, err
		}
		sent.Tokens = append(sent.Tokens, tok)
	}
	return sent, nil
}

// ReadSentences reads blank-line separated sentences from r.
func ReadSentences(r io.Reader, parse LineParser) ([]*Sentence, error) {
	var (
		sents []*Sentence
		cur   = &Sentence{}
		line  int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			if cur.Len() > 0 {
				sents = append(sents, cur)
				cur = &Sentence{}
			}
			continue
		}
		tok, err := parse(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cur.Tokens = append(cur.Tokens, tok)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read conll: %w", err)
	}
	if cur.Len() > 0 {
		sents = append(sents, cur)
	}
	return sents, nil
}

// WriteSentences writes each sentence followed by a blank line.
func WriteSentences(w io.Writer, sents []*Sentence) error {
	bw := bufio.NewWriter(w)
	for _, sent := range sents {
		if _, err := bw.WriteString(sent.String() + "\n\n"); err != nil {
			return fmt.Errorf("write conll: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write conll: %w", err)
	}
	return nil
}

// WritePOS writes one line of space-separated word/POS pairs per sentence.
func WritePOS(w io.Writer, sents []*Sentence) error {
	return writeLines(w, sents, func(tok *Token) string { return tok.Word + "/" + tok.POS })
}

// WriteText writes one line of space-separated words per sentence.
func WriteText(w io.Writer, sents []*Sentence) error {
	return writeLines(w, sents, func(tok *Token) string { return tok.Word })
}

func writeLines(w io.Writer, sents []*Sentence, render func(*Token) string) error {
	bw := bufio.NewWriter(w)
	for _, sent := range sents {
		fields := make([]string, len(sent.Tokens))
		for i, tok := range sent.Tokens {
			fields[i] = render(tok)
		}
		bw.WriteString(strings.Join(fields, " "))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write lines: %w", err)
	}
	return nil
}
