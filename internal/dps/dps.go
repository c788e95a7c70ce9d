// Package dps reads and writes the disfluency markup (.dps) files of the
// Switchboard Treebank-3 release.
package dps

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Token is one word of a .dps file with the disfluency state in force when it
// was read.
type Token struct {
	Word    string
	POS     string
	Tag     string
	Speaker string

	// Reparandum is set inside an open [ ... + span.
	Reparandum bool
	// Repair is set after the interruption point of a disfluency.
	Repair bool
}

// NoTag marks a token outside any {F, {D, {C, or {E bracket.
const NoTag = "-"

const unknownSpeaker = "??"

// Read parses a .dps file into its word tokens.
func Read(r io.Reader) ([]Token, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read dps: %w", err)
	}
	body, err := splitBody(string(data))
	if err != nil {
		return nil, err
	}

	var (
		toks     []Token
		tag      = NoTag
		depth    int
		sawIP    bool
		skipNext bool
		speaker  = unknownSpeaker
	)
	for _, word := range strings.Fields(body) {
		if strings.HasPrefix(word, "SpeakerA") || strings.HasPrefix(word, "SpeakerB") {
			speaker = strings.TrimPrefix(strings.SplitN(word, "/", 2)[0], "Speaker")
			skipNext = true
			continue
		}
		if skipNext {
			skipNext = false
			continue
		}
		switch word {
		case "{F", "{D", "{C", "{E":
			tag = word[1:]
		case "}":
			tag = NoTag
		case "[":
			depth++
			sawIP = false
		case "]":
			if !sawIP && depth >= 1 {
				depth--
			}
			sawIP = false
		case "+":
			depth--
			sawIP = true
		default:
			idx := strings.LastIndexByte(word, '/')
			if idx < 0 {
				continue
			}
			toks = append(toks, Token{
				Word:       word[:idx],
				POS:        word[idx+1:],
				Tag:        tag,
				Speaker:    speaker,
				Reparandum: depth != 0,
				Repair:     sawIP,
			})
		}
	}
	return toks, nil
}

func splitBody(text string) (string, error) {
	idx := strings.Index(text, "===")
	if idx < 0 {
		return "", fmt.Errorf("read dps: missing header separator")
	}
	rest := strings.TrimLeft(text[idx:], "=")
	if strings.Contains(rest, "===") {
		return "", fmt.Errorf("read dps: more than one header separator")
	}
	return rest, nil
}

// PathFor maps a Treebank-3 .mrg path to its .dps counterpart.
func PathFor(mrgPath string) string {
	p := strings.ReplaceAll(mrgPath, "parsed/mrg/", "dysfl/dps/")
	return strings.ReplaceAll(p, ".mrg", ".dps")
}
