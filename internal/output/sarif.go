package output

import (
	"encoding/json"
	"io"

	"github.com/endlessm/difflint/internal/types"
)

// ToolVersion is the difflint version reported in SARIF and Markdown output.
var ToolVersion = "dev"

// SARIFFormatter outputs introduced problems in SARIF 2.1.0 format for
// GitHub Code Scanning. Terse lines carry no positions, so results locate
// the file only.
type SARIFFormatter struct{}

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID            string             `json:"id"`
	DefaultConfig sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

func (f *SARIFFormatter) Format(w io.Writer, result *types.CheckResult) error {
	ruleIndex := map[string]int{}
	rules := []sarifRule{}
	results := []sarifResult{}
	for _, p := range Problems(result) {
		id := p.Label
		if id == "" {
			id = "lint"
		}
		if _, ok := ruleIndex[id]; !ok {
			ruleIndex[id] = len(rules)
			rules = append(rules, sarifRule{ID: id, DefaultConfig: sarifDefaultConfig{Level: labelToLevel(id)}})
		}
		results = append(results, sarifResult{
			RuleID:    id,
			RuleIndex: ruleIndex[id],
			Level:     labelToLevel(id),
			Message:   sarifMessage{Text: p.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: p.Path},
				},
			}},
		})
	}

	log := sarifLog{
		Schema:  "https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "difflint",
						Version:        ToolVersion,
						InformationURI: "https://github.com/endlessm/difflint",
						Rules:          rules,
					},
				},
				Results:    results,
				Properties: map[string]any{"duration_ms": result.Duration.Milliseconds()},
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func labelToLevel(label string) string {
	if isError(label) {
		return "error"
	}
	return "warning"
}
