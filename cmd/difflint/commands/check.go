package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/endlessm/difflint/internal/lintdiff"
	"github.com/endlessm/difflint/internal/output"
	"github.com/endlessm/difflint/internal/types"
)

var (
	flagFail    bool
	flagLogFile string
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Compare the lint output of staged changes against HEAD",
	Long: `Lints every staged file twice, as committed in HEAD and as staged, and reports
the lint lines the staged version adds. Details go to lintdiff.log at the
repository root; the log is removed when nothing new was introduced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagFail, "fail", false, "Exit with code 1 when new lint problems are introduced")
	checkCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Log file path, relative to the repository root (default: lintdiff.log)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	if e.repo == nil {
		return fmt.Errorf("%s is not inside a git repository", dir)
	}
	if missing := e.runner.Missing(); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "warning: linters not found on PATH: %v\n", missing)
	}

	checker := &lintdiff.Checker{
		Repo:    e.repo,
		Runner:  e.runner,
		Workers: e.cfg.Workers,
		Log:     e.log,
	}

	var spinner *output.Spinner
	if !flagVerbose && output.IsTerminal(os.Stderr) {
		spinner = output.NewSpinner(os.Stderr)
		spinner.Start("Linting staged files", 0)
		checker.OnFile = func(path string) { spinner.Step() }
	}
	result, err := checker.Run(ctx)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	e.saveCache()

	stderr := cmd.ErrOrStderr()
	reportFiles(stderr, result)

	logPath := logFilePath(e.root, e.cfg.LogFile)
	if err := lintdiff.WriteLog(logPath, result, time.Now()); err != nil {
		return err
	}
	if result.NewIssues {
		notice := color.New(color.FgYellow, color.Bold)
		notice.Fprintf(stderr, "NOTICE: Check %s for linting error details.\n", displayPath(logPath))
	}

	if flagFormat != "" {
		if err := writeReport(cmd, result); err != nil {
			return err
		}
	}

	return checkFail(e.cfg.Fail, result)
}

// reportFiles prints one line per compared file saying whether its changes
// introduced lint problems.
func reportFiles(w io.Writer, result *types.CheckResult) {
	introduced := make(map[string]bool)
	for _, f := range result.Files {
		if f.Introduced() {
			introduced[f.Path] = true
		}
	}
	warn := color.New(color.FgYellow)
	for _, path := range result.Compared {
		if introduced[path] {
			warn.Fprintf(w, "WARNING: Changes to %s introduced linting errors!\n", path)
		} else {
			fmt.Fprintf(w, "Changes to %s introduced no new linting errors.\n", path)
		}
	}
}

func logFilePath(root, configured string) string {
	name := flagLogFile
	if name == "" {
		name = configured
	}
	if name == "" {
		name = lintdiff.DefaultLogFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(root, name)
}

// displayPath shows path relative to the working directory when it is below it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && filepath.IsLocal(rel) {
		return rel
	}
	return path
}

func checkFail(fromConfig bool, result *types.CheckResult) error {
	if (flagFail || fromConfig) && result.NewIssues {
		osExit(1)
	}
	return nil
}
