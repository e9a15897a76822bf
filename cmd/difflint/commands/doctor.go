package commands

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [dir]",
	Short: "Check the configuration and that every configured linter is installed",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	e, err := loadEnv(ctx, cmd, dir)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(w, "config:     %s\n", describeConfig(e.cfgPath))
	if e.repo != nil {
		fmt.Fprintf(w, "repository: %s\n", e.repo.Root)
	} else {
		fmt.Fprintf(w, "repository: %s\n", bad("not a git repository"))
	}

	missing := e.runner.Missing()
	if len(missing) == 0 {
		fmt.Fprintf(w, "linters:    %s\n", ok("all installed"))
	} else {
		fmt.Fprintf(w, "linters:    %s %s\n", bad("missing"), strings.Join(missing, ", "))
	}

	if hint := pathHint(); hint != "" {
		fmt.Fprintf(w, "\n%s\n", hint)
	}

	if len(missing) > 0 {
		return errors.New("some configured linters are not installed")
	}
	return nil
}

// pathHint explains how to fix PATH when difflint is installed in a go/bin
// directory the pre-commit hook cannot see. It returns "" when difflint is
// reachable by name.
func pathHint() string {
	if _, err := exec.LookPath("difflint"); err == nil {
		return ""
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return ""
	}
	dir := filepath.Dir(exe)
	if !isGoBinDir(dir) || dirInPATH(dir) {
		return ""
	}
	rc := shellConfigFile()
	return fmt.Sprintf("The pre-commit hook runs difflint by name but %s is not on PATH:\n\n"+
		"  echo 'export PATH=\"$HOME/go/bin:$PATH\"' >> %s\n  source %s", dir, rc, rc)
}

// isGoBinDir reports whether dir ends with a "go/bin" segment.
func isGoBinDir(dir string) bool {
	return strings.HasSuffix(filepath.ToSlash(dir), "/go/bin")
}

// dirInPATH reports whether dir appears in the system PATH.
func dirInPATH(dir string) bool {
	for _, p := range filepath.SplitList(os.Getenv("PATH")) {
		if p == dir {
			return true
		}
	}
	return false
}

// shellConfigFile returns the user's shell rc file path based on $SHELL,
// falling back to OS defaults (zsh on macOS, bash on Linux).
func shellConfigFile() string {
	shell := os.Getenv("SHELL")
	switch {
	case strings.Contains(shell, "zsh"):
		return "~/.zshrc"
	case strings.Contains(shell, "bash"):
		return "~/.bashrc"
	case runtime.GOOS == "darwin":
		return "~/.zshrc"
	default:
		return "~/.bashrc"
	}
}
