// Package output renders check results as the plain lintdiff.log body, a
// colored terminal summary, JSON, SARIF and Markdown.
package output

import (
	"io"
	"strings"

	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
)

// Formatter is the interface for outputting check results.
type Formatter interface {
	Format(w io.Writer, result *types.CheckResult) error
}

// Problem is one introduced lint line split into its segments.
type Problem struct {
	Path    string
	Label   string
	Message string
	Line    string
}

// Problems returns every introduced lint line in result, file by file.
// Added files contribute their whole output, other files the lines their
// diff added.
func Problems(result *types.CheckResult) []Problem {
	var out []Problem
	for _, f := range result.Files {
		if !f.Introduced() {
			continue
		}
		lines := f.NewIssues
		if f.Status == types.StatusAdded {
			lines = splitOutput(f.Output)
		}
		for _, l := range lines {
			p := Problem{Path: f.Path, Line: l}
			if _, label, msg, ok := terse.Split(l); ok {
				p.Label, p.Message = label, msg
			} else {
				p.Message = l
			}
			out = append(out, p)
		}
	}
	return out
}

func splitOutput(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
