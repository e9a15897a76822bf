// Package lintdiff compares the lint output of committed and staged file
// versions and reports the problems a commit introduces.
package lintdiff

import (
	"strings"

	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"
)

// Unified returns a unified diff with no context lines between two lint
// outputs, or "" when they render the same lines.
func Unified(oldName, newName string, old, new types.LintOutput) (string, error) {
	if old.Equal(new) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(old.Lines),
		B:        withNewlines(new.Lines),
		FromFile: oldName,
		ToFile:   newName,
		Context:  0,
	})
}

// Introduced returns the terse lines added by a unified diff produced by
// Unified, without their leading "+". Empty labels and messages are kept;
// a line needs only its two separators.
func Introduced(unified string) ([]string, error) {
	if unified == "" {
		return nil, nil
	}
	fd, err := diff.ParseFileDiff([]byte(unified))
	if err != nil {
		return nil, err
	}
	var added []string
	for _, h := range fd.Hunks {
		for _, line := range strings.Split(string(h.Body), "\n") {
			rest, ok := strings.CutPrefix(line, "+")
			if !ok {
				continue
			}
			if _, _, _, ok := terse.Split(rest); ok {
				added = append(added, rest)
			}
		}
	}
	return added, nil
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}
