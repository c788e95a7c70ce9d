package treebank

import (
	"swbd/internal/config"
	"swbd/internal/conll"
	"swbd/internal/textutil"
)

// Filters decides which converter tokens survive into the output.
type Filters struct {
	Punct     map[string]struct{}
	Fillers   map[string]struct{}
	MWEs      []string
	MinTokens int
}

// FiltersFromConfig builds Filters from the [filters] config section.
func FiltersFromConfig(cfg config.Filters) Filters {
	return Filters{
		Punct:     textutil.SetOf(cfg.PunctTags...),
		Fillers:   textutil.SetOf(textutil.LowerAll(append([]string(nil), cfg.FillerWords...))...),
		MWEs:      append([]string(nil), cfg.MWEs...),
		MinTokens: cfg.MinTokens,
	}
}

// Clean removes disfluency markers, fragments, punctuation, and fillers,
// lower-cases the rest, and merges the multi-word expressions. Removal runs
// one class at a time so each pass reattaches heads over the survivors of
// the previous one.
func (f Filters) Clean(sent *conll.Sentence) error {
	rejectors := []func(*conll.Token) bool{
		func(t *conll.Token) bool { return t.POS == "-DFL-" },
		func(t *conll.Token) bool { return t.POS == "XX" },
		func(t *conll.Token) bool { return textutil.IsPartialWord(t.Word) },
		func(t *conll.Token) bool { return contains(f.Punct, t.POS) },
		func(t *conll.Token) bool { return contains(f.Fillers, textutil.Lower(t.Word)) },
	}
	for _, reject := range rejectors {
		if err := sent.RemoveTokens(reject); err != nil {
			return err
		}
	}
	sent.LowerCase()
	for _, mwe := range f.MWEs {
		if err := sent.MergeMWE(mwe); err != nil {
			return err
		}
	}
	return nil
}

// Keep reports whether a cleaned sentence is long enough to write.
func (f Filters) Keep(sent *conll.Sentence) bool {
	return sent.Len() >= f.MinTokens
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
