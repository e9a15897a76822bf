package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/endlessm/difflint/internal/types"
)

const lineWidth = 72

// TerminalFormatter prints a colored summary of the problems a commit
// introduces, grouped by file.
type TerminalFormatter struct {
	NoColor bool
	Verbose bool
}

func (f *TerminalFormatter) paint(attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if f.NoColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.SprintFunc()
}

func (f *TerminalFormatter) Format(w io.Writer, result *types.CheckResult) error {
	bold := f.paint(color.Bold)
	dim := f.paint(color.Faint)
	red := f.paint(color.FgRed)
	yellow := f.paint(color.FgYellow)
	cyan := f.paint(color.FgCyan)

	sep := strings.Repeat("─", lineWidth)
	fmt.Fprintf(w, "\n%s\n", dim(sep))
	fmt.Fprintf(w, "  %s\n", bold("DIFFLINT"))
	fmt.Fprintf(w, "  %d files linted  ·  %.2fs\n", result.FilesLinted, result.Duration.Seconds())
	fmt.Fprintf(w, "%s\n", dim(sep))

	problems := Problems(result)
	if len(problems) == 0 {
		fmt.Fprintf(w, "\n  %s No new lint problems.\n", cyan("✔"))
	}

	current := ""
	for _, p := range problems {
		if p.Path != current {
			current = p.Path
			fmt.Fprintf(w, "\n%s\n", bold(sectionHeader(p.Path)))
		}
		icon := yellow("▲")
		if isError(p.Label) {
			icon = red("✖")
		}
		fmt.Fprintf(w, "  %s %-8s %s\n", icon, p.Label, p.Message)
	}

	if f.Verbose {
		for _, file := range result.Files {
			if file.Diff == "" {
				continue
			}
			fmt.Fprintf(w, "\n%s\n", dim(sectionHeader("diff "+file.Path)))
			for _, line := range strings.Split(strings.TrimRight(file.Diff, "\n"), "\n") {
				switch {
				case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
					fmt.Fprintf(w, "  %s\n", red(line))
				case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
					fmt.Fprintf(w, "  %s\n", cyan(line))
				default:
					fmt.Fprintf(w, "  %s\n", dim(line))
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", dim(sep))
	fmt.Fprintf(w, "  %d new problems in %d files\n", len(problems), countFiles(problems))
	fmt.Fprintf(w, "%s\n", dim(sep))
	return nil
}

func sectionHeader(title string) string {
	prefix := "── " + title + " "
	remaining := max(lineWidth-utf8.RuneCountInString(prefix), 0)
	return prefix + strings.Repeat("─", remaining)
}

// isError reports whether a label or code denotes an error rather than a warning.
func isError(label string) bool {
	switch {
	case label == string(types.LabelError), label == "FATAL":
		return true
	case len(label) > 1 && label[0] == 'E' && label[1] >= '0' && label[1] <= '9':
		return true
	}
	return false
}

func countFiles(problems []Problem) int {
	seen := make(map[string]bool)
	for _, p := range problems {
		seen[p.Path] = true
	}
	return len(seen)
}
