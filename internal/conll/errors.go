package conll

import (
	"fmt"

	"swbd/internal/pipeline"
)

// AlignmentError reports a token that could not be matched against the
// disfluency layer.
type AlignmentError struct {
	Offset   int
	Word     string
	Expected string
}

func (e *AlignmentError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("align %q at dps offset %d: disfluency tokens exhausted", e.Word, e.Offset)
	}
	return fmt.Sprintf("align %q at dps offset %d: dps has %q", e.Word, e.Offset, e.Expected)
}

func (e *AlignmentError) Unwrap() error { return pipeline.ErrAlignment }

// MWEError reports a multi-word expression whose two tokens are not in a
// head/child relation that can be merged.
type MWEError struct {
	MWE      string
	Position int
	Heads    [2]int
}

func (e *MWEError) Error() string {
	return fmt.Sprintf("merge %s at token %d: unsupported heads %d and %d", e.MWE, e.Position, e.Heads[0], e.Heads[1])
}

func (e *MWEError) Unwrap() error { return pipeline.ErrValidation }
