package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/endlessm/difflint/internal/cache"
	"github.com/endlessm/difflint/internal/config"
	"github.com/endlessm/difflint/internal/git"
	"github.com/endlessm/difflint/internal/linter"
	"github.com/endlessm/difflint/internal/log"
	"github.com/endlessm/difflint/internal/output"
	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
)

// env is what every linting command needs: the configuration found at the
// repository root and a runner built from it.
type env struct {
	root      string
	repo      *git.Repo // nil outside a git repository
	cfg       config.Config
	cfgPath   string
	formatter terse.Formatter
	runner    *linter.Runner
	store     *cache.Store
	log       *log.Logger
}

func loadEnv(ctx context.Context, cmd *cobra.Command, dir string) (*env, error) {
	e := &env{log: &log.Logger{Enabled: flagVerbose, W: os.Stderr}}

	if repo, err := git.Open(ctx, dir); err == nil {
		e.repo = repo
		e.root = repo.Root
	} else {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		e.root = abs
	}

	cfg, path, err := config.Load(e.root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		cfg = config.Default()
	}
	e.cfgPath = path
	e.log.Printf("config: %s", describeConfig(path))
	applyFlags(cmd, &cfg)
	e.cfg = cfg

	e.formatter, err = buildFormatter(cfg)
	if err != nil {
		return nil, err
	}

	if flagCache {
		cachePath := flagCachePath
		if cachePath == "" {
			cachePath = cache.DefaultPath()
		}
		e.store = cache.New(cachePath)
		if err := e.store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: loading cache: %v\n", err)
		}
	}

	e.runner, err = linter.New(cfg, e.formatter, e.store, e.log)
	if err != nil {
		return nil, err
	}
	e.runner.Dir = e.root
	return e, nil
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("multi-file") {
		cfg.MultiFile = flagMultiFile
	}
	if flags.Changed("collation") {
		cfg.Collation = flagCollation
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}
}

func buildFormatter(cfg config.Config) (terse.Formatter, error) {
	policy, err := terse.ParsePolicy(cfg.MultiFile)
	if err != nil {
		return terse.Formatter{}, err
	}
	collation, err := terse.ParseCollation(cfg.Collation)
	if err != nil {
		return terse.Formatter{}, err
	}
	return terse.Formatter{Policy: policy, Collation: collation}, nil
}

func (e *env) saveCache() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: saving cache: %v\n", err)
	}
}

func describeConfig(path string) string {
	if path == "" {
		return "built-in defaults"
	}
	return path
}

func contextWithInterrupt() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func reportFormatter(format string) (output.Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return &output.JSONFormatter{}, nil
	case "sarif":
		return &output.SARIFFormatter{}, nil
	case "markdown", "md":
		return &output.MarkdownFormatter{}, nil
	case "text", "log":
		return &output.TextFormatter{}, nil
	case "terminal":
		return &output.TerminalFormatter{NoColor: flagNoColor, Verbose: flagVerbose}, nil
	default:
		return nil, fmt.Errorf("unknown --format %q (terminal, json, sarif, markdown, text)", format)
	}
}

func writeReport(cmd *cobra.Command, result *types.CheckResult) error {
	output.ToolVersion = Version

	formatter, err := reportFormatter(flagFormat)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return formatter.Format(w, result)
}
