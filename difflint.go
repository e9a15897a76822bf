// Package difflint provides a public API for rendering linter reports as
// sorted "filename|severity|message" lines and for comparing the lint output
// of staged changes against HEAD.
//
// This is the library entry point. For the CLI tool, see cmd/difflint/.
package difflint

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/endlessm/difflint/internal/cache"
	"github.com/endlessm/difflint/internal/config"
	"github.com/endlessm/difflint/internal/git"
	"github.com/endlessm/difflint/internal/lintdiff"
	"github.com/endlessm/difflint/internal/linter"
	"github.com/endlessm/difflint/internal/source"
	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
)

// Re-export core types from internal packages so consumers don't need to
// import them.
type (
	Issue           = types.Issue
	Batch           = types.Batch
	Label           = types.Label
	CheckResult     = types.CheckResult
	FileReport      = types.FileReport
	MultiFilePolicy = terse.Policy
	Collation       = terse.Collation
	InputShapeError = terse.InputShapeError
)

const (
	LabelError   = types.LabelError
	LabelWarning = types.LabelWarning

	PolicyReject  = terse.PolicyReject
	PolicyPerFile = terse.PolicyPerFile

	CollationLocale = terse.CollationLocale
	CollationBytes  = terse.CollationBytes
)

// Tools returns the names of the supported report formats.
func Tools() []string {
	return source.Names()
}

// Lines renders batches reported by tool as sorted terse lines.
func Lines(batches []Batch, tool string, opts ...Option) ([]string, error) {
	src, err := source.Lookup(tool)
	if err != nil {
		return nil, err
	}
	cfg := applyOpts(opts)
	if cfg.filename != "" {
		batches = source.Reattribute(batches, cfg.filename)
	}
	return cfg.formatter().Format(batches, src)
}

// Format decodes a report produced by tool and renders it as sorted terse lines.
func Format(r io.Reader, tool string, opts ...Option) ([]string, error) {
	batches, err := decode(r, tool)
	if err != nil {
		return nil, err
	}
	return Lines(batches, tool, opts...)
}

// Write decodes a report produced by tool and writes one terse line per
// issue to w. Nothing is written when the report cannot be formatted.
func Write(w io.Writer, r io.Reader, tool string, opts ...Option) ([]string, error) {
	lines, err := Format(r, tool, opts...)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return lines, err
		}
	}
	return lines, nil
}

// Check compares the lint output of the changes staged in the repository
// containing dir against HEAD, using the repository's difflint configuration.
// Options override the configured ordering, multi-file policy and workers.
func Check(ctx context.Context, dir string, opts ...Option) (*CheckResult, error) {
	o := applyOpts(opts)

	repo, err := git.Open(ctx, dir)
	if err != nil {
		return nil, err
	}
	cfg, _, err := config.Load(repo.Root)
	if err != nil {
		return nil, err
	}

	f, err := formatterFor(cfg, o)
	if err != nil {
		return nil, err
	}

	var store *cache.Store
	if o.cachePath != "" {
		store = cache.New(o.cachePath)
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "difflint: warning: loading cache: %v\n", err)
		}
	}

	runner, err := linter.New(cfg, f, store, nil)
	if err != nil {
		return nil, err
	}
	runner.Dir = repo.Root

	workers := cfg.Workers
	if o.workers != 0 {
		workers = o.workers
	}
	result, err := (&lintdiff.Checker{Repo: repo, Runner: runner, Workers: workers}).Run(ctx)
	if err != nil {
		return nil, err
	}
	if store != nil {
		if err := store.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "difflint: warning: saving cache: %v\n", err)
		}
	}
	return result, nil
}

// --- internal helpers ---

func decode(r io.Reader, tool string) ([]Batch, error) {
	src, err := source.Lookup(tool)
	if err != nil {
		return nil, err
	}
	return src.Decode(r)
}

// formatterFor resolves the formatter from the configuration, letting
// explicit options win.
func formatterFor(cfg config.Config, o *options) (terse.Formatter, error) {
	policy, err := terse.ParsePolicy(cfg.MultiFile)
	if err != nil {
		return terse.Formatter{}, err
	}
	collation, err := terse.ParseCollation(cfg.Collation)
	if err != nil {
		return terse.Formatter{}, err
	}
	if o.policy != nil {
		policy = *o.policy
	}
	if o.collation != nil {
		collation = *o.collation
	}
	return terse.Formatter{Policy: policy, Collation: collation}, nil
}
