package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/endlessm/difflint/internal/types"
)

// MarkdownFormatter outputs introduced problems as GitHub-flavored markdown,
// suited to CI job summaries and PR comments.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, result *types.CheckResult) error {
	problems := Problems(result)
	if len(problems) == 0 {
		fmt.Fprintf(w, "### :white_check_mark: difflint: no new lint problems\n\n")
		fmt.Fprintf(w, "> %d files linted · %.2fs\n", result.FilesLinted, result.Duration.Seconds())
		return nil
	}

	fmt.Fprintf(w, "### :rotating_light: difflint: %d new lint problems\n\n", len(problems))
	fmt.Fprintf(w, "> %d files linted · %d files affected · %.2fs\n\n",
		result.FilesLinted, countFiles(problems), result.Duration.Seconds())

	fmt.Fprintf(w, "| File | Rule | Message |\n")
	fmt.Fprintf(w, "|------|------|---------|\n")
	for _, p := range problems {
		fmt.Fprintf(w, "| `%s` | `%s` | %s |\n", p.Path, p.Label, escapeMarkdown(truncate(p.Message, 120)))
	}

	for _, file := range result.Files {
		if file.Diff == "" {
			continue
		}
		fmt.Fprintf(w, "\n<details>\n<summary><code>%s</code> lint diff</summary>\n\n", file.Path)
		fmt.Fprintf(w, "```diff\n%s```\n\n</details>\n", file.Diff)
	}

	fmt.Fprintf(w, "\n---\n*Checked by difflint %s*\n", ToolVersion)
	return nil
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
