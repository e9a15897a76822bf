// Package types defines shared data structures (Issue, Batch, LintOutput,
// CheckResult) used across the terse formatter, the issue sources and the
// lint comparison to prevent import cycles.
package types

import (
	"encoding/json"
	"strings"
	"time"
)

// Label is the normalized severity of an issue reported in the numeric shape.
type Label string

const (
	LabelError   Label = "error"
	LabelWarning Label = "warning"
)

// Issue is one finding reported by a linter. Depending on the tool, the
// severity is carried either by Fatal/Severity or by Code.
type Issue struct {
	Message  string `json:"message"`
	Rule     string `json:"rule,omitempty"`
	Fatal    bool   `json:"fatal,omitempty"`
	Severity int    `json:"severity,omitempty"`
	Code     string `json:"code,omitempty"`
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// Batch holds every issue reported for a single file.
type Batch struct {
	Filename string  `json:"filename"`
	Issues   []Issue `json:"issues"`
}

// Labeler produces the middle segment of a terse line for an issue.
type Labeler interface {
	Label(issue Issue) string
}

// LintOutput is the terse rendering of every linter run against one file.
type LintOutput struct {
	Lines    []string `json:"lines"`
	Warnings bool     `json:"warnings"`
}

// Text joins the lines, each newline terminated.
func (o LintOutput) Text() string {
	if len(o.Lines) == 0 {
		return ""
	}
	return strings.Join(o.Lines, "\n") + "\n"
}

// Equal reports whether two outputs rendered the same lines.
func (o LintOutput) Equal(other LintOutput) bool {
	if len(o.Lines) != len(other.Lines) {
		return false
	}
	for i := range o.Lines {
		if o.Lines[i] != other.Lines[i] {
			return false
		}
	}
	return true
}

// ChangeStatus is how a staged file differs from HEAD.
type ChangeStatus string

const (
	StatusModified ChangeStatus = "modified"
	StatusAdded    ChangeStatus = "added"
	StatusRenamed  ChangeStatus = "renamed"
)

// FileReport describes the lint comparison for one staged file.
type FileReport struct {
	Path      string       `json:"path"`
	OldPath   string       `json:"old_path,omitempty"`
	Status    ChangeStatus `json:"status"`
	Diff      string       `json:"diff,omitempty"`
	Output    string       `json:"output,omitempty"`
	Warnings  bool         `json:"warnings,omitempty"`
	NewIssues []string     `json:"new_issues,omitempty"`
}

// Introduced reports whether this file gained lint problems. An added file
// counts when any linter flagged it, even without parseable output.
func (r FileReport) Introduced() bool {
	if r.Status == StatusAdded {
		return r.Warnings
	}
	return len(r.NewIssues) > 0
}

// CheckResult holds the complete result of comparing staged changes.
type CheckResult struct {
	Files       []FileReport  `json:"files"`
	Compared    []string      `json:"compared,omitempty"` // every linted path, in git order
	FilesLinted int           `json:"files_linted"`
	NewIssues   bool          `json:"new_issues"`
	Duration    time.Duration `json:"-"`
	Root        string        `json:"-"`
}

// MarshalJSON implements custom JSON marshaling so Duration serializes as milliseconds.
func (r CheckResult) MarshalJSON() ([]byte, error) {
	type Alias CheckResult
	return json.Marshal(struct {
		Alias
		DurationMS int64 `json:"duration_ms"`
	}{
		Alias:      Alias(r),
		DurationMS: r.Duration.Milliseconds(),
	})
}
