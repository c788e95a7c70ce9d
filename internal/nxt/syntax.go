package nxt

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Ref points at one terminal, or at a document-order span of terminals when
// To is set.
type Ref struct {
	File string
	From string
	To   string
}

// ParseHref parses "file#id(a)" and "file#id(a)..id(b)".
func ParseHref(href string) (Ref, error) {
	file, frag, ok := strings.Cut(strings.TrimSpace(href), "#")
	if !ok {
		return Ref{}, fmt.Errorf("href %q: missing fragment", href)
	}
	ref := Ref{File: filepath.Base(file)}
	from, to, isRange := strings.Cut(frag, "..")
	var err error
	if ref.From, err = unwrapID(from); err != nil {
		return Ref{}, fmt.Errorf("href %q: %w", href, err)
	}
	if isRange {
		if ref.To, err = unwrapID(to); err != nil {
			return Ref{}, fmt.Errorf("href %q: %w", href, err)
		}
	}
	return ref, nil
}

func unwrapID(v string) (string, error) {
	if !strings.HasPrefix(v, "id(") || !strings.HasSuffix(v, ")") || len(v) <= 4 {
		return "", fmt.Errorf("malformed id %q", v)
	}
	return v[3 : len(v)-1], nil
}

// SyntaxNode is a constituent of a parse. Leaves carry a terminal Ref.
type SyntaxNode struct {
	ID       string
	Cat      string
	Ref      *Ref
	Children []*SyntaxNode
}

// Parse is one sentence of a syntax file.
type Parse struct {
	ID   string
	Num  int
	Root []*SyntaxNode
	// Refs lists every terminal the parse references, in document order.
	Refs []Ref
}

// ReadSyntax parses a syntax file.
func ReadSyntax(path, charsetName string) ([]*Parse, error) {
	root, err := readDocument(path, charsetName)
	if err != nil {
		return nil, err
	}
	var (
		parses  []*Parse
		walkErr error
	)
	root.walk(func(e *element) {
		if walkErr != nil || e.XMLName.Local != "parse" {
			return
		}
		p := &Parse{ID: e.niteAttr("id")}
		p.Num, _ = strconv.Atoi(strings.TrimPrefix(p.ID, "s"))
		for i := range e.Children {
			node, err := buildSyntax(&e.Children[i], p)
			if err != nil {
				walkErr = fmt.Errorf("%s parse %s: %w", filepath.Base(path), p.ID, err)
				return
			}
			if node != nil {
				p.Root = append(p.Root, node)
			}
		}
		parses = append(parses, p)
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return parses, nil
}

func buildSyntax(e *element, p *Parse) (*SyntaxNode, error) {
	switch {
	case e.isNite("child"):
		ref, err := ParseHref(e.attr("href"))
		if err != nil {
			return nil, err
		}
		p.Refs = append(p.Refs, ref)
		return &SyntaxNode{Ref: &ref}, nil
	case e.XMLName.Local == "nt":
		node := &SyntaxNode{ID: e.niteAttr("id"), Cat: e.attr("cat")}
		for i := range e.Children {
			child, err := buildSyntax(&e.Children[i], p)
			if err != nil {
				return nil, err
			}
			if child != nil {
				node.Children = append(node.Children, child)
			}
		}
		return node, nil
	default:
		return nil, nil
	}
}
