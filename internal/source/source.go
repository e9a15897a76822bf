// Package source decodes the machine-readable reports of third-party lint
// tools into batches of issues, and labels those issues for the terse
// formatter. Each tool is one Source; tools that share a report shape share
// a labeler instead of a formatter.
package source

import (
	"fmt"
	"io"
	"sort"

	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
)

// Source decodes one tool's report and labels its issues.
type Source interface {
	types.Labeler
	Name() string
	Decode(r io.Reader) ([]types.Batch, error)
}

var registry = map[string]Source{}

func register(s Source) {
	registry[s.Name()] = s
}

func init() {
	register(&ESLint{LevelLabeler: terse.LevelLabeler{ErrorLevel: terse.ESLintErrorLevel}})
	register(&JSHint{})
	register(&JSCS{})
	register(&Pycodestyle{})
	register(&Pyflakes{})
}

// Lookup returns the source registered under name.
func Lookup(name string) (Source, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q (known: %v)", name, Names())
	}
	return s, nil
}

// Names returns the registered formats, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Reattribute merges batches into a single batch for filename, keeping issue
// order. Used when a tool linted stdin, which is one file whatever names the
// tool reported.
func Reattribute(batches []types.Batch, filename string) []types.Batch {
	if len(batches) == 0 {
		return nil
	}
	merged := types.Batch{Filename: filename}
	for _, b := range batches {
		merged.Issues = append(merged.Issues, b.Issues...)
	}
	return []types.Batch{merged}
}

// grouper collects issues per file in first-seen order.
type grouper struct {
	index   map[string]int
	batches []types.Batch
}

func (g *grouper) add(filename string, issue types.Issue) {
	if g.index == nil {
		g.index = make(map[string]int)
	}
	i, ok := g.index[filename]
	if !ok {
		i = len(g.batches)
		g.index[filename] = i
		g.batches = append(g.batches, types.Batch{Filename: filename})
	}
	g.batches[i].Issues = append(g.batches[i].Issues, issue)
}
