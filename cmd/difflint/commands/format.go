package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/endlessm/difflint/internal/config"
	"github.com/endlessm/difflint/internal/source"
	"github.com/endlessm/difflint/internal/terse"
)

var (
	flagTool     string
	flagInput    string
	flagFilename string
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Convert a linter report into terse lines",
	Long: `Reads a machine-readable linter report from stdin (or --input) and prints one
sorted "filename|severity|message" line per issue. Reports covering more than
one file are rejected unless --multi-file per-file is given.`,
	Args: cobra.NoArgs,
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringVar(&flagTool, "tool", "", "Report format: eslint, jshint, jscs, pycodestyle, pyflakes")
	formatCmd.Flags().StringVar(&flagInput, "input", "", "Read the report from this file instead of stdin")
	formatCmd.Flags().StringVar(&flagFilename, "filename", "", "Attribute every issue to this filename")
	_ = formatCmd.MarkFlagRequired("tool")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	src, err := source.Lookup(flagTool)
	if err != nil {
		return err
	}

	var cfg config.Config
	applyFlags(cmd, &cfg)
	f, err := buildFormatter(cfg)
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if flagInput != "" {
		file, err := os.Open(flagInput)
		if err != nil {
			return fmt.Errorf("opening report: %w", err)
		}
		defer func() { _ = file.Close() }()
		r = file
	}

	batches, err := src.Decode(r)
	if err != nil {
		return err
	}
	if flagFilename != "" {
		batches = source.Reattribute(batches, flagFilename)
	}

	_, err = f.Write(cmd.OutOrStdout(), batches, src)
	var shapeErr *terse.InputShapeError
	if errors.As(err, &shapeErr) {
		return fmt.Errorf("%w (use --multi-file per-file)", err)
	}
	return err
}
