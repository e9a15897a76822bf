package terse

import "github.com/endlessm/difflint/internal/types"

// ESLintErrorLevel is the "error" severity used by ESLint-style tools
// (0 off, 1 warning, 2 error).
const ESLintErrorLevel = 2

// Classify returns LabelError for fatal issues and for issues at the tool's
// error level, LabelWarning otherwise.
func Classify(fatal bool, severity, errorLevel int) types.Label {
	if fatal || severity == errorLevel {
		return types.LabelError
	}
	return types.LabelWarning
}

// LevelLabeler labels issues that carry a numeric severity.
type LevelLabeler struct {
	ErrorLevel int
}

func (l LevelLabeler) Label(issue types.Issue) string {
	return string(Classify(issue.Fatal, issue.Severity, l.ErrorLevel))
}

// CodeLabeler labels issues with their tool code, verbatim.
type CodeLabeler struct{}

func (CodeLabeler) Label(issue types.Issue) string {
	return issue.Code
}
