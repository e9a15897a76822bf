// Package linter runs the configured external lint tools on file contents and
// renders their reports as terse lines.
package linter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/endlessm/difflint/internal/cache"
	"github.com/endlessm/difflint/internal/config"
	"github.com/endlessm/difflint/internal/log"
	"github.com/endlessm/difflint/internal/source"
	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
)

// Runner lints file contents with the linters configured for their extension.
type Runner struct {
	cfg       config.Config
	formatter terse.Formatter
	sources   map[string]source.Source
	cache     *cache.Store
	log       *log.Logger

	// Dir is the working directory linters run in, usually the repository root.
	Dir string
}

// New creates a Runner. Every configured linter must name a known report
// format. store and logger may be nil.
func New(cfg config.Config, f terse.Formatter, store *cache.Store, logger *log.Logger) (*Runner, error) {
	sources := make(map[string]source.Source, len(cfg.Linters))
	for name, l := range cfg.Linters {
		src, err := source.Lookup(l.Format)
		if err != nil {
			return nil, fmt.Errorf("linter %q: %w", name, err)
		}
		sources[name] = src
	}
	return &Runner{
		cfg:       cfg,
		formatter: f,
		sources:   sources,
		cache:     store,
		log:       logger,
	}, nil
}

// Handles reports whether any linter is configured for path and path is not ignored.
func (r *Runner) Handles(path string) bool {
	return !r.cfg.Ignored(path) && len(r.cfg.LintersFor(path)) > 0
}

// Lint runs every linter configured for path over content and returns the
// combined terse output. The filename in every line is path, whatever name
// the tool reported.
func (r *Runner) Lint(ctx context.Context, path string, content []byte) (types.LintOutput, error) {
	var out types.LintOutput
	for _, name := range r.cfg.LintersFor(path) {
		res, err := r.run(ctx, name, path, content)
		if err != nil {
			return types.LintOutput{}, err
		}
		out.Lines = append(out.Lines, res.Lines...)
		out.Warnings = out.Warnings || res.Warnings
	}
	return out, nil
}

func (r *Runner) run(ctx context.Context, name, path string, content []byte) (types.LintOutput, error) {
	l := r.cfg.Linters[name]
	src := r.sources[name]
	args := l.Expand(path)

	var key string
	if r.cache != nil {
		key = cache.Key([]byte(strings.Join(args, "\x00")), []byte(l.Format), []byte(path), content)
		if e, ok := r.cache.Get(key); ok {
			r.log.Printf("%s: %s (cached)", name, path)
			return types.LintOutput{Lines: e.Lines, Warnings: e.Warnings}, nil
		}
	}

	r.log.Printf("%s: %s", name, path)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdin = bytes.NewReader(content)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var out types.LintOutput
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			return types.LintOutput{}, fmt.Errorf("running %s: %w", name, err)
		}
		// Linters exit non-zero when they find something.
		out.Warnings = true
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			r.log.Printf("%s: %s", name, msg)
		}
	}

	batches, err := src.Decode(&stdout)
	if err != nil {
		return types.LintOutput{}, fmt.Errorf("%s on %s: %w", name, path, err)
	}
	lines, err := r.formatter.Format(source.Reattribute(batches, path), src)
	if err != nil {
		return types.LintOutput{}, fmt.Errorf("%s on %s: %w", name, path, err)
	}
	out.Lines = lines
	if len(lines) > 0 {
		out.Warnings = true
	}

	if r.cache != nil {
		r.cache.Set(key, out.Lines, out.Warnings)
	}
	return out, nil
}

// Missing returns the configured linters whose executable cannot be found,
// sorted by name.
func (r *Runner) Missing() []string {
	used := make(map[string]bool)
	for _, lang := range r.cfg.Languages {
		for _, name := range lang.Linters {
			used[name] = true
		}
	}
	var missing []string
	for name := range used {
		l, ok := r.cfg.Linters[name]
		if !ok || len(l.Command) == 0 {
			continue
		}
		if _, err := exec.LookPath(l.Command[0]); err != nil {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
