package lintdiff

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/endlessm/difflint/internal/git"
	"github.com/endlessm/difflint/internal/linter"
	"github.com/endlessm/difflint/internal/log"
	"github.com/endlessm/difflint/internal/types"
	"golang.org/x/sync/errgroup"
)

// Checker lints the staged changes of a repository against HEAD.
type Checker struct {
	Repo    *git.Repo
	Runner  *linter.Runner
	Workers int
	Log     *log.Logger

	// OnFile is called after each file is compared. It may be called
	// concurrently.
	OnFile func(path string)
}

// Run compares every staged file that has linters configured. Modified and
// renamed files report the lint lines they add; added files report their
// whole output when any linter flagged them.
func (c *Checker) Run(ctx context.Context) (*types.CheckResult, error) {
	start := time.Now()

	changes, err := c.Repo.StagedChanges(ctx)
	if err != nil {
		return nil, err
	}
	var todo []git.Change
	for _, ch := range changes {
		if c.Runner.Handles(ch.Path) {
			todo = append(todo, ch)
		} else {
			c.Log.Printf("skipping %s", ch.Path)
		}
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	reports := make([]*types.FileReport, len(todo))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ch := range todo {
		g.Go(func() error {
			r, err := c.compare(gctx, ch)
			if err != nil {
				return err
			}
			reports[i] = r
			if c.OnFile != nil {
				c.OnFile(ch.Path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &types.CheckResult{
		FilesLinted: len(todo),
		Root:        c.Repo.Root,
	}
	for _, ch := range todo {
		result.Compared = append(result.Compared, ch.Path)
	}
	for _, r := range reports {
		if r == nil {
			continue
		}
		result.Files = append(result.Files, *r)
		if r.Introduced() {
			result.NewIssues = true
		}
	}
	result.Duration = time.Since(start)
	return result, nil
}

// compare returns nil when the file's lint output did not change.
func (c *Checker) compare(ctx context.Context, ch git.Change) (*types.FileReport, error) {
	staged, err := c.Repo.Show(ctx, "", ch.Path)
	if err != nil {
		return nil, err
	}
	current, err := c.Runner.Lint(ctx, ch.Path, staged)
	if err != nil {
		return nil, err
	}

	if ch.Status == 'A' {
		if !current.Warnings {
			return nil, nil
		}
		return &types.FileReport{
			Path:     ch.Path,
			Status:   types.StatusAdded,
			Output:   current.Text(),
			Warnings: true,
		}, nil
	}

	report := &types.FileReport{Path: ch.Path, Status: types.StatusModified}
	oldPath := ch.Path
	if ch.OldPath != "" {
		oldPath = ch.OldPath
		report.OldPath = ch.OldPath
		report.Status = types.StatusRenamed
	}

	committed, err := c.Repo.Show(ctx, "HEAD", oldPath)
	if err != nil {
		return nil, err
	}
	past, err := c.Runner.Lint(ctx, ch.Path, committed)
	if err != nil {
		return nil, err
	}

	// The baseline is linted under the new path so unchanged issues render
	// identically across a rename; the diff header keeps both names.
	report.Diff, err = Unified(oldPath, ch.Path, past, current)
	if err != nil {
		return nil, fmt.Errorf("diffing lint output of %s: %w", ch.Path, err)
	}
	if report.Diff == "" {
		return nil, nil
	}
	report.NewIssues, err = Introduced(report.Diff)
	if err != nil {
		return nil, fmt.Errorf("parsing lint diff of %s: %w", ch.Path, err)
	}
	report.Output = current.Text()
	report.Warnings = current.Warnings
	return report, nil
}
