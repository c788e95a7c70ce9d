package ptb

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Preprocess drops CODE lines and *x* header lines from .mrg text.
func Preprocess(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "( (CODE") || strings.HasPrefix(line, "*x*") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Repair balances brackets in .mrg text. A stray closing bracket at depth
// zero is dropped, and a sentence that starts while the previous one is still
// open has the missing closing brackets inserted before it.
func Repair(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 16)
	depth := 0
	lines := strings.SplitAfter(text, "\n")
	for _, line := range lines {
		if depth > 0 && startsSentence(line) {
			// close the unterminated sentence on the line before
			trimmed := strings.TrimRight(b.String(), "\n")
			newlines := b.Len() - len(trimmed)
			b.Reset()
			b.WriteString(trimmed)
			b.WriteString(strings.Repeat(")", depth))
			b.WriteString(strings.Repeat("\n", newlines))
			depth = 0
		}
		for i := 0; i < len(line); i++ {
			switch line[i] {
			case '(':
				depth++
			case ')':
				if depth == 0 {
					continue
				}
				depth--
			}
			b.WriteByte(line[i])
		}
	}
	if depth > 0 {
		b.WriteString(strings.Repeat(")", depth))
	}
	return b.String()
}

func startsSentence(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "(") {
		return false
	}
	rest := strings.TrimLeft(trimmed[1:], " \t")
	return strings.HasPrefix(rest, "(") && trimmed == line
}

// Read parses every tree in r.
func Read(r io.Reader) ([]*Tree, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read trees: %w", err)
	}
	return Parse(string(data))
}

// Parse parses bracketed trees from text. Trees may span several lines.
func Parse(text string) ([]*Tree, error) {
	p := &parser{tokens: tokenize(text)}
	var trees []*Tree
	for p.pos < len(p.tokens) {
		root, err := p.node()
		if err != nil {
			return nil, err
		}
		tree := &Tree{Root: root}
		for i, w := range root.Words() {
			w.ID = strconv.Itoa(i)
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) next() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *parser) peek() string {
	if p.pos >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *parser) node() (*Node, error) {
	start := p.pos
	tok, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("parse tree: unexpected end of input")
	}
	if tok != "(" {
		return nil, fmt.Errorf("parse tree: expected '(' at token %d, got %q", start, tok)
	}
	n := &Node{}
	if t := p.peek(); t != "(" && t != ")" {
		n.Label, _ = p.next()
	}
	for {
		switch t := p.peek(); t {
		case "":
			return nil, fmt.Errorf("parse tree: unterminated node %q starting at token %d", n.Label, start)
		case ")":
			p.pos++
			if len(n.Children) == 0 && n.Text == "" {
				return nil, fmt.Errorf("parse tree: empty node %q at token %d", n.Label, start)
			}
			return n, nil
		case "(":
			child, err := p.node()
			if err != nil {
				return nil, err
			}
			n.Append(child)
		default:
			p.pos++
			if n.Text != "" || len(n.Children) > 0 {
				return nil, fmt.Errorf("parse tree: unexpected word %q in node %q", t, n.Label)
			}
			n.Text = t
		}
	}
}

func tokenize(text string) []string {
	var tokens []string
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, text[start:end])
			start = -1
		}
	}
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '(', ')':
			flush(i)
			tokens = append(tokens, string(c))
		case ' ', '\t', '\n', '\r':
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(text))
	return tokens
}
