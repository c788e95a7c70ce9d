package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower lower-cases a corpus token. A fresh Caser is used per call because
// cases.Caser carries state between calls.
func Lower(value string) string {
	if isASCIILower(value) {
		return value
	}
	return cases.Lower(language.Und).String(value)
}

// LowerAll lower-cases every element of values in place and returns it.
func LowerAll(values []string) []string {
	for i, v := range values {
		values[i] = Lower(v)
	}
	return values
}

// IsPartialWord reports whether a word form marks an interrupted word such as
// "th-".
func IsPartialWord(word string) bool {
	return strings.HasSuffix(word, "-")
}

// SetOf builds a membership set from values.
func SetOf(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func isASCIILower(value string) bool {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c >= 0x80 || (c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
