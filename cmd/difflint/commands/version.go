package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/endlessm/difflint/internal/update"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var flagCheckUpdate bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "difflint %s (commit: %s)\n", Version, Commit)
		if !flagCheckUpdate {
			return
		}
		r := update.CheckLatest(cmd.Context(), Version)
		switch {
		case r == nil:
			fmt.Fprintln(cmd.OutOrStdout(), "could not determine the latest release")
		case r.NeedsUpdate():
			fmt.Fprintf(cmd.OutOrStdout(), "difflint %s is available: %s\n", r.Latest, r.Install)
		default:
			fmt.Fprintln(cmd.OutOrStdout(), "up to date")
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&flagCheckUpdate, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}
