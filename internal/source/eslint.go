package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
)

// ESLint reads `eslint --format json` output. Severity 2 is an error.
type ESLint struct {
	terse.LevelLabeler
}

type eslintMessage struct {
	RuleID   *string `json:"ruleId"`
	Severity int     `json:"severity"`
	Fatal    bool    `json:"fatal"`
	Message  string  `json:"message"`
	Line     int     `json:"line"`
	Column   int     `json:"column"`
}

type eslintResult struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

func (*ESLint) Name() string { return "eslint" }

func (*ESLint) Decode(r io.Reader) ([]types.Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var results []eslintResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decoding eslint report: %w", err)
	}
	batches := make([]types.Batch, 0, len(results))
	for _, res := range results {
		b := types.Batch{Filename: res.FilePath}
		for _, m := range res.Messages {
			issue := types.Issue{
				Message:  m.Message,
				Fatal:    m.Fatal,
				Severity: m.Severity,
				Filename: res.FilePath,
				Line:     m.Line,
				Column:   m.Column,
			}
			if m.RuleID != nil {
				issue.Rule = *m.RuleID
			}
			b.Issues = append(b.Issues, issue)
		}
		batches = append(batches, b)
	}
	return batches, nil
}
