// Package terse renders lint issues as single "filename|label|message"
// lines, sorted so that two runs over the same findings produce identical
// output regardless of the order the linter reported them in.
package terse

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/endlessm/difflint/internal/types"
)

// Separator delimits the segments of a terse line.
const Separator = "|"

// Policy decides what happens when one report covers several files.
type Policy int

const (
	// PolicyReject fails with an *InputShapeError.
	PolicyReject Policy = iota
	// PolicyPerFile formats every file's batch on its own.
	PolicyPerFile
)

func (p Policy) String() string {
	switch p {
	case PolicyPerFile:
		return "per-file"
	default:
		return "reject"
	}
}

// ParsePolicy converts a config or flag value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return PolicyReject, nil
	case "per-file", "perfile":
		return PolicyPerFile, nil
	default:
		return PolicyReject, fmt.Errorf("unknown multi-file policy: %q", s)
	}
}

// Collation selects how rendered lines are ordered.
type Collation int

const (
	// CollationLocale orders lines with the Unicode collation algorithm.
	CollationLocale Collation = iota
	// CollationBytes orders lines by their raw bytes.
	CollationBytes
)

func (c Collation) String() string {
	switch c {
	case CollationBytes:
		return "bytes"
	default:
		return "locale"
	}
}

// ParseCollation converts a config or flag value to a Collation.
func ParseCollation(s string) (Collation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "locale":
		return CollationLocale, nil
	case "bytes", "byte":
		return CollationBytes, nil
	default:
		return CollationLocale, fmt.Errorf("unknown collation: %q", s)
	}
}

// Formatter turns batches of issues into sorted terse lines. The zero value
// rejects multi-file input and sorts with locale collation.
type Formatter struct {
	Policy    Policy
	Collation Collation
}

// Render builds one terse line. The message is not escaped.
func Render(filename, label, message string) string {
	return filename + Separator + label + Separator + message
}

// Lines renders every issue in b and returns them sorted. b is not modified.
func (f Formatter) Lines(b types.Batch, l types.Labeler) []string {
	if len(b.Issues) == 0 {
		return nil
	}
	lines := make([]string, len(b.Issues))
	for i, issue := range b.Issues {
		lines[i] = Render(b.Filename, l.Label(issue), issue.Message)
	}
	f.sort(lines)
	return lines
}

// Format renders every batch according to the multi-file policy.
func (f Formatter) Format(batches []types.Batch, l types.Labeler) ([]string, error) {
	if len(batches) > 1 && f.Policy == PolicyReject {
		files := make([]string, len(batches))
		for i, b := range batches {
			files[i] = b.Filename
		}
		return nil, &InputShapeError{Files: files}
	}
	var lines []string
	for _, b := range batches {
		lines = append(lines, f.Lines(b, l)...)
	}
	return lines, nil
}

// Write formats batches and writes each line to w. Nothing is written when
// formatting fails. Every line goes out in a single Write call.
func (f Formatter) Write(w io.Writer, batches []types.Batch, l types.Labeler) ([]string, error) {
	lines, err := f.Format(batches, l)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return lines, err
		}
	}
	return lines, nil
}

func (f Formatter) sort(lines []string) {
	if f.Collation == CollationBytes {
		sort.Strings(lines)
		return
	}
	// A Collator keeps scratch buffers and must not be shared.
	c := collate.New(language.Und)
	sort.SliceStable(lines, func(i, j int) bool {
		if r := c.CompareString(lines[i], lines[j]); r != 0 {
			return r < 0
		}
		return lines[i] < lines[j]
	})
}

// Split breaks a terse line into its three segments. The message keeps any
// further separators. ok is false when the line has fewer than two separators.
func Split(line string) (filename, label, message string, ok bool) {
	parts := strings.SplitN(line, Separator, 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
