package source

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
)

// JSHint reads `jshint --reporter checkstyle` output. Issues are labeled
// with the JSHint code (W033, E019, ...) taken from the source attribute.
type JSHint struct {
	terse.CodeLabeler
}

type checkstyleReport struct {
	Files []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

func (*JSHint) Name() string { return "jshint" }

func (*JSHint) Decode(r io.Reader) ([]types.Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var report checkstyleReport
	if err := xml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decoding jshint checkstyle report: %w", err)
	}
	var g grouper
	for _, f := range report.Files {
		for _, e := range f.Errors {
			g.add(f.Name, types.Issue{
				Message:  e.Message,
				Rule:     e.Source,
				Code:     strings.TrimPrefix(e.Source, "jshint."),
				Fatal:    e.Severity == "error",
				Filename: f.Name,
				Line:     e.Line,
				Column:   e.Column,
			})
		}
	}
	return g.batches, nil
}
