package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint <file>...",
	Short: "Lint working-tree files and print terse lines",
	Long: `Runs the linters configured for each file's extension and prints their findings
as sorted "filename|severity|message" lines. Exits 1 when any linter
reported a problem.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx, cancel := contextWithInterrupt()
	defer cancel()

	e, err := loadEnv(ctx, cmd, ".")
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	warnings := false
	for _, path := range args {
		rel := repoRelative(e.root, path)
		if !e.runner.Handles(rel) {
			e.log.Printf("no linters for %s", rel)
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		out, err := e.runner.Lint(ctx, rel, content)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, out.Text()); err != nil {
			return err
		}
		warnings = warnings || out.Warnings
	}
	e.saveCache()

	if warnings {
		osExit(1)
	}
	return nil
}

// repoRelative returns path relative to root when it lies inside it, so
// ignore patterns and rendered filenames match what check reports.
func repoRelative(root, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	if rel, err := filepath.Rel(root, abs); err == nil && filepath.IsLocal(rel) {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
