package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
)

// JSCS reads `jscs --reporter json` output, an object mapping each file to
// its errors. Issues are labeled with the rule name; older JSCS releases
// omit it and the label is left empty.
type JSCS struct {
	terse.CodeLabeler
}

type jscsError struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
	Rule    string `json:"rule"`
}

func (*JSCS) Name() string { return "jscs" }

func (*JSCS) Decode(r io.Reader) ([]types.Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var report map[string][]jscsError
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decoding jscs report: %w", err)
	}

	files := make([]string, 0, len(report))
	for name := range report {
		files = append(files, name)
	}
	sort.Strings(files)

	batches := make([]types.Batch, 0, len(files))
	for _, name := range files {
		b := types.Batch{Filename: name}
		for _, e := range report[name] {
			b.Issues = append(b.Issues, types.Issue{
				Message:  e.Message,
				Rule:     e.Rule,
				Code:     e.Rule,
				Filename: name,
				Line:     e.Line,
				Column:   e.Column,
			})
		}
		batches = append(batches, b)
	}
	return batches, nil
}
