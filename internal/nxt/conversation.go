package nxt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"swbd/internal/config"
	"swbd/internal/pipeline"
	"swbd/internal/ptb"
)

// Speakers lists the two sides of a conversation.
var Speakers = []string{"A", "B"}

// Layout locates the annotation layers of an NXT release.
type Layout struct {
	TerminalsDir string
	SyntaxDir    string
	TurnsDir     string
	Charset      string
}

// LayoutFromConfig resolves the layer directories under root.
func LayoutFromConfig(root string, cfg config.NXT) Layout {
	join := func(sub string) string {
		if sub == "" {
			return ""
		}
		if filepath.IsAbs(sub) {
			return sub
		}
		return filepath.Join(root, sub)
	}
	return Layout{
		TerminalsDir: join(cfg.TerminalsSubdir),
		SyntaxDir:    join(cfg.SyntaxSubdir),
		TurnsDir:     join(cfg.TurnsSubdir),
		Charset:      cfg.Charset,
	}
}

// TerminalsPath returns the terminals file of one speaker.
func (l Layout) TerminalsPath(number int, speaker string) string {
	return filepath.Join(l.TerminalsDir, fmt.Sprintf("sw%d.%s.terminals.xml", number, speaker))
}

// SyntaxPath returns the syntax file of one speaker.
func (l Layout) SyntaxPath(number int, speaker string) string {
	return filepath.Join(l.SyntaxDir, fmt.Sprintf("sw%d.%s.syntax.xml", number, speaker))
}

// TurnsPath returns the turns file of one speaker.
func (l Layout) TurnsPath(number int, speaker string) string {
	if l.TurnsDir == "" {
		return ""
	}
	return filepath.Join(l.TurnsDir, fmt.Sprintf("sw%d.%s.turns.xml", number, speaker))
}

// Sentence is one parse resolved against the terminals.
type Sentence struct {
	Parse   *Parse
	Speaker string
	Tree    *ptb.Tree
}

// Conversation is both sides of one Switchboard conversation.
type Conversation struct {
	Number    int
	Terminals map[string]*Terminals
	Sentences []*Sentence
}

// Resolve returns the terminal a single-id Ref points at.
func (c *Conversation) Resolve(ref Ref) (*Terminal, bool) {
	if ts, ok := c.Terminals[ref.File]; ok {
		return ts.Get(ref.From)
	}
	return nil, false
}

// Expand returns the terminals a Ref covers in document order.
func (c *Conversation) Expand(ref Ref) []*Terminal {
	ts, ok := c.Terminals[ref.File]
	if !ok {
		return nil
	}
	if ref.To == "" {
		if t, ok := ts.Get(ref.From); ok {
			return []*Terminal{t}
		}
		return nil
	}
	from, to := ts.Index(ref.From), ts.Index(ref.To)
	if from < 0 || to < from {
		return nil
	}
	return ts.Items[from : to+1]
}

// LoadTerminalsAndParses loads the terminals and parses of both speakers
// without building trees. Sentences are sorted by parse number.
func LoadTerminalsAndParses(layout Layout, number int) (*Conversation, error) {
	conv := &Conversation{Number: number, Terminals: make(map[string]*Terminals)}
	for _, speaker := range Speakers {
		termPath := layout.TerminalsPath(number, speaker)
		ts, err := ReadTerminals(termPath, layout.Charset)
		if err != nil {
			return nil, missing(err, "terminals", termPath)
		}
		conv.Terminals[filepath.Base(termPath)] = ts
	}
	for _, speaker := range Speakers {
		synPath := layout.SyntaxPath(number, speaker)
		parses, err := ReadSyntax(synPath, layout.Charset)
		if err != nil {
			return nil, missing(err, "syntax", synPath)
		}
		for _, p := range parses {
			conv.Sentences = append(conv.Sentences, &Sentence{Parse: p, Speaker: speaker})
		}
	}
	sort.SliceStable(conv.Sentences, func(i, j int) bool {
		return conv.Sentences[i].Parse.Num < conv.Sentences[j].Parse.Num
	})
	return conv, nil
}

// LoadConversation loads a conversation and builds a ptb tree per sentence.
// Words carry their terminal id and timings, and each tree carries its
// speaker and turn number. Without a turns layer the sentence number stands
// in for the turn.
func LoadConversation(layout Layout, number int) (*Conversation, error) {
	conv, err := LoadTerminalsAndParses(layout, number)
	if err != nil {
		return nil, err
	}
	turnOf := make(map[string]map[string]string)
	for _, speaker := range Speakers {
		path := layout.TurnsPath(number, speaker)
		if path == "" {
			continue
		}
		turns, err := ReadTurns(path, layout.Charset)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, pipeline.Wrap(pipeline.ErrValidation, "nxt", "read turns", path, err)
		}
		termFile := filepath.Base(layout.TerminalsPath(number, speaker))
		turnOf[termFile] = AssignTurns(turns, conv.Terminals[termFile])
	}

	for _, sent := range conv.Sentences {
		tree, err := conv.buildTree(sent)
		if err != nil {
			return nil, err
		}
		tree.Turn = strconv.Itoa(sent.Parse.Num)
		for _, ref := range sent.Parse.Refs {
			if turn, ok := turnOf[ref.File][ref.From]; ok {
				tree.Turn = turn
				break
			}
		}
		sent.Tree = tree
	}
	return conv, nil
}

func (c *Conversation) buildTree(sent *Sentence) (*ptb.Tree, error) {
	root := ptb.NewNode("")
	for _, node := range sent.Parse.Root {
		child, err := c.buildNode(node)
		if err != nil {
			return nil, pipeline.Wrap(pipeline.ErrNotFound, "nxt", "build tree",
				fmt.Sprintf("sw%d %s", c.Number, sent.Parse.ID), err)
		}
		root.Append(child)
	}
	return &ptb.Tree{Root: root, ID: sent.Parse.ID, Speaker: sent.Speaker}, nil
}

func (c *Conversation) buildNode(node *SyntaxNode) (*ptb.Node, error) {
	if node.Ref != nil {
		t, ok := c.Resolve(*node.Ref)
		if !ok {
			return nil, fmt.Errorf("terminal %s#%s not found", node.Ref.File, node.Ref.From)
		}
		if t.Kind == KindSil {
			return nil, nil
		}
		w := ptb.NewWord(t.POS, t.Orth)
		w.ID = t.ID
		w.Start = t.Start
		w.End = t.End
		return w, nil
	}
	n := ptb.NewNode(node.Cat)
	for _, child := range node.Children {
		built, err := c.buildNode(child)
		if err != nil {
			return nil, err
		}
		n.Append(built)
	}
	return n, nil
}

func missing(err error, layer, path string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return pipeline.Wrap(pipeline.ErrNotFound, "nxt", "load "+layer, path, err)
	}
	return pipeline.Wrap(pipeline.ErrValidation, "nxt", "load "+layer, path, err)
}

// Discover lists the conversation numbers that have an A-side syntax file.
func Discover(syntaxDir string) ([]int, error) {
	entries, err := os.ReadDir(syntaxDir)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrNotFound, "nxt", "discover", syntaxDir, err)
	}
	var numbers []int
	for _, entry := range entries {
		name := entry.Name()
		if name == "CVS" || entry.IsDir() {
			continue
		}
		parts := strings.SplitN(name, ".", 3)
		if len(parts) < 3 || parts[1] != "A" || !strings.HasPrefix(parts[0], "sw") {
			continue
		}
		n, err := strconv.Atoi(parts[0][2:])
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers, nil
}
