package output

import (
	"io"
	"strings"

	"github.com/endlessm/difflint/internal/types"
)

// TextFormatter writes the body of lintdiff.log: for each changed file three
// blank lines then either the unified diff of its lint output, or for an
// added file its name and full lint output.
type TextFormatter struct{}

func (f *TextFormatter) Format(w io.Writer, result *types.CheckResult) error {
	var b strings.Builder
	for _, file := range result.Files {
		b.WriteString("\n\n\n")
		if file.Status == types.StatusAdded {
			b.WriteString(file.Path + "\n")
			b.WriteString(file.Output)
			continue
		}
		b.WriteString(file.Diff)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
