package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	flagFormat    string
	flagOutput    string
	flagWorkers   int
	flagNoColor   bool
	flagVerbose   bool
	flagMultiFile string
	flagCollation string
	flagCache     bool
	flagCachePath string
)

// osExit is replaced in tests.
var osExit = os.Exit

var rootCmd = &cobra.Command{
	Use:   "difflint",
	Short: "Report only the lint problems a commit introduces",
	Long: `difflint lints every staged file as committed in HEAD and as staged, renders
each linter's findings as sorted "filename|severity|message" lines and diffs
the two. Lines that appear only in the staged version are new problems.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			flagNoColor = true
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "Report format (terminal, json, sarif, markdown)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Number of files linted concurrently (default: NumCPU)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Trace linter runs on stderr")
	rootCmd.PersistentFlags().StringVar(&flagMultiFile, "multi-file", "", "Reports covering several files: reject or per-file")
	rootCmd.PersistentFlags().StringVar(&flagCollation, "collation", "", "Line ordering: locale or bytes")
	rootCmd.PersistentFlags().BoolVar(&flagCache, "cache", false, "Reuse lint results for unchanged content across runs")
	rootCmd.PersistentFlags().StringVar(&flagCachePath, "cache-path", "", "Path to the cache file (default: ~/.difflint/cache.json)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
