package conll

import (
	"fmt"
	"strconv"
	"strings"

	"swbd/internal/dps"
)

// Token is one row of a dependency sentence.
type Token struct {
	ID    int
	Word  string
	POS   string
	Label string
	Head  int

	Speaker string
	DPSTag  string
	IsEdit  bool
	DPSRM   bool
	DPSRR   bool
	MRGRM   bool
	MRGRR   bool

	// Feats replaces the rendered disfluency column when set.
	Feats string
}

const defaultSpeaker = "??"

// ParseConverterLine reads one line of converter CoNLL-X output. A final
// column of True marks the token as edited.
func ParseConverterLine(line string) (*Token, error) {
	fields := strings.Fields(line)
	if len(fields) < 8 {
		return nil, fmt.Errorf("conll line: expected at least 8 fields, got %d in %q", len(fields), line)
	}
	tok, err := parseCommon(fields, line)
	if err != nil {
		return nil, err
	}
	tok.DPSTag = dps.NoTag
	tok.IsEdit = fields[len(fields)-1] == "True"
	return tok, nil
}

// ParseEnrichedLine reads a line previously written by Token.String. A FEATS
// column of '-' yields the default annotation.
func ParseEnrichedLine(line string) (*Token, error) {
	fields := strings.Fields(line)
	if len(fields) < 8 {
		return nil, fmt.Errorf("conll line: expected at least 8 fields, got %d in %q", len(fields), line)
	}
	tok, err := parseCommon(fields, line)
	if err != nil {
		return nil, err
	}
	feats := []string{defaultSpeaker, dps.NoTag, "-", "-", "-"}
	if fields[5] != "-" {
		feats = strings.Split(fields[5], "|")
		if len(feats) < 5 {
			return nil, fmt.Errorf("conll line: malformed disfluency column %q", fields[5])
		}
	}
	tok.Speaker = feats[0]
	tok.DPSTag = feats[1]
	tok.IsEdit = feats[2] == "1"
	tok.DPSRM = strings.Contains(feats[3], "RM")
	tok.DPSRR = strings.Contains(feats[3], "RR")
	tok.MRGRM = strings.Contains(feats[4], "RM")
	tok.MRGRR = strings.Contains(feats[4], "RR")
	return tok, nil
}

func parseCommon(fields []string, line string) (*Token, error) {
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("conll line: bad id in %q: %w", line, err)
	}
	head, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("conll line: bad head in %q: %w", line, err)
	}
	return &Token{
		ID:    id,
		Word:  fields[1],
		POS:   firstTag(fields[3]),
		Label: fields[7],
		Head:  head,
	}, nil
}

// firstTag keeps the first of a ^-joined tag set (^VBP^UH becomes VBP).
func firstTag(pos string) string {
	pos = strings.TrimPrefix(pos, "^")
	if idx := strings.IndexByte(pos, '^'); idx >= 0 {
		pos = pos[:idx]
	}
	return pos
}

// DisfluencyFeats renders the FEATS column.
func (t *Token) DisfluencyFeats() string {
	if t.Feats != "" {
		return t.Feats
	}
	edit := "0"
	if t.IsEdit {
		edit = "1"
	}
	return strings.Join([]string{
		t.Speaker,
		t.DPSTag,
		edit,
		editString(t.DPSRM, t.DPSRR),
		editString(t.MRGRM, t.MRGRR),
	}, "|")
}

// String renders the token as a ten-column CoNLL line.
func (t *Token) String() string {
	return fmt.Sprintf("%d\t%s\t-\t%s\t%s\t%s\t%d\t%s\t-\t-",
		t.ID, t.Word, t.POS, t.POS, t.DisfluencyFeats(), t.Head, t.Label)
}

// MRGMarkup returns the token as .dps markup, using the .mrg edit spans.
func (t *Token) MRGMarkup() dps.Token {
	return dps.Token{
		Word:       t.Word,
		POS:        t.POS,
		Tag:        t.DPSTag,
		Speaker:    t.Speaker,
		Reparandum: t.MRGRM,
		Repair:     t.MRGRR,
	}
}

func editString(rm, rr bool) string {
	switch {
	case rm && rr:
		return "RM,RR"
	case rm:
		return "RM"
	case rr:
		return "RR"
	default:
		return "-"
	}
}
