package testsupport

import (
	"context"
	"fmt"
	"strings"

	"swbd/internal/ptb"
)

// DependencyStub stands in for the dependency converter. Each non-trace word
// is attached to the word before it with the label "dep", and POS comes from
// the tree. The scratch names it is called with are appended to calls when
// calls is non-nil. Wrap it in converter.Func.
func DependencyStub(calls *[]string) func(context.Context, string, string) (string, error) {
	return func(_ context.Context, name, trees string) (string, error) {
		if calls != nil {
			*calls = append(*calls, name)
		}
		parsed, err := ptb.Parse(trees)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for _, tree := range parsed {
			id := 0
			for _, w := range tree.Words() {
				if w.IsTrace() {
					continue
				}
				id++
				fmt.Fprintf(&b, "%d\t%s\t_\t%s\t%s\t_\t%d\tdep\t_\t_\n", id, w.Text, w.Label, w.Label, id-1)
			}
			b.WriteString("\n")
		}
		return b.String(), nil
	}
}
