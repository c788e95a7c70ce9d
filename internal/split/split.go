// Package split partitions Switchboard conversations into the train, test,
// dev, and dev2 sections by conversation number.
package split

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"swbd/internal/config"
)

// Section names one output partition.
type Section string

const (
	Train Section = "train"
	Test  Section = "test"
	Dev   Section = "dev"
	Dev2  Section = "dev2"
)

// Sections lists the standard sections in the order conversions write them.
var Sections = []Section{Train, Test, Dev, Dev2}

// Policy assigns conversation numbers using the Johnson and Charniak ranges.
type Policy struct {
	TrainBelow int
	TestAbove  int
	TestMax    int
	DevAbove   int
	DevMax     int
}

// FromConfig builds a Policy from the [split] config section.
func FromConfig(cfg config.Split) Policy {
	return Policy(cfg)
}

// Standard returns the policy with the default ranges.
func Standard() Policy {
	return FromConfig(config.DefaultSplit())
}

// Assign returns the section for conversation number n. Numbers outside the
// train, test, and dev ranges fall into dev2.
func (p Policy) Assign(n int) Section {
	switch {
	case n < p.TrainBelow:
		return Train
	case n > p.TestAbove && n <= p.TestMax:
		return Test
	case n > p.DevAbove && n <= p.DevMax:
		return Dev
	default:
		return Dev2
	}
}

// Legacy assigns the older dependency split used for pre-converted .dep files.
// Files outside its ranges are not assigned.
func Legacy(n int) (Section, bool) {
	switch {
	case n < 4000:
		return Train, true
	case n >= 4004 && n < 4153:
		return Test, true
	case n >= 4519 && n < 4936:
		return Dev, true
	default:
		return "", false
	}
}

// TreebankSection maps a conversation number to its Treebank-3 directory.
func TreebankSection(n int) string {
	switch {
	case n > 4000:
		return "4"
	case n > 3000:
		return "3"
	default:
		return "2"
	}
}

// FileNumber extracts the conversation number from names such as sw2005.mrg,
// sw2005.A.syntax.xml, sw2005.mrg.dep, or a bare 2005.
func FileNumber(name string) (int, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	base = strings.TrimPrefix(base, "sw")
	n, err := strconv.Atoi(base)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("file number: unrecognised name %q", name)
	}
	return n, nil
}

// Entry is a file with its conversation number.
type Entry struct {
	Number int
	Path   string
}

// Divide groups paths by section using assign, sorting each group by
// conversation number. Paths whose number cannot be parsed are returned in
// rejected. assign may report false to leave a file unassigned.
func Divide(paths []string, assign func(int) (Section, bool)) (map[Section][]Entry, []string) {
	out := make(map[Section][]Entry)
	var rejected []string
	for _, path := range paths {
		n, err := FileNumber(path)
		if err != nil {
			rejected = append(rejected, path)
			continue
		}
		section, ok := assign(n)
		if !ok {
			rejected = append(rejected, path)
			continue
		}
		out[section] = append(out[section], Entry{Number: n, Path: path})
	}
	for section := range out {
		entries := out[section]
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Number != entries[j].Number {
				return entries[i].Number < entries[j].Number
			}
			return entries[i].Path < entries[j].Path
		})
	}
	return out, rejected
}

// Assigner adapts a Policy for Divide.
func (p Policy) Assigner() func(int) (Section, bool) {
	return func(n int) (Section, bool) { return p.Assign(n), true }
}
