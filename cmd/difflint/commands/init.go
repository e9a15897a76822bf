package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var flagHook bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize difflint configuration",
	Long:  `Scaffolds .difflint.yml, or with --hook a git pre-commit hook that runs difflint check.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagHook, "hook", false, "Create a git pre-commit hook that runs difflint")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if flagHook {
		return initHook(dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return writeNew(filepath.Join(dir, ".difflint.yml"), configTemplate, 0644)
}

func initHook(dir string) error {
	gitDir := filepath.Join(dir, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		return fmt.Errorf("no .git directory found in %s (is this a git repository?)", dir)
	}
	hookPath := filepath.Join(gitDir, "hooks", "pre-commit")
	if err := os.MkdirAll(filepath.Dir(hookPath), 0755); err != nil {
		return fmt.Errorf("creating hooks directory: %w", err)
	}
	return writeNew(hookPath, preCommitTemplate, 0755)
}

// writeNew creates path with content unless it already exists.
func writeNew(path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("  skip %s (already exists)\n", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("  create %s\n", path)
	return nil
}

const configTemplate = `# difflint configuration
# Languages replace the built-in list; linters are merged over the built-in
# definitions (eslint, jshint, jscs, pycodestyle, pep8, pyflakes).

languages:
  javascript:
    extensions: [js]
    linters: [jscs, jshint]
  python:
    extensions: [py]
    linters: [pycodestyle, pyflakes]

# linters:
#   eslint:
#     command: [eslint, --format, json, --stdin, --stdin-filename, "{path}"]
#     format: eslint

# Paths never linted (doublestar globs)
ignore:
  - "vendor/**"
  - "node_modules/**"

# Reports covering several files: reject or per-file
multi_file: reject

# Line ordering: locale or bytes
collation: locale

log_file: lintdiff.log

# Exit 1 from "difflint check" when new problems are introduced
# fail: true
`

const preCommitTemplate = `#!/bin/sh
# difflint pre-commit hook: refuse commits that introduce lint problems.
# Bypass with "git commit --no-verify".
exec difflint check --fail
`
