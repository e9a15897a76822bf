// Package git reads staged and committed file contents from a repository
// without touching the work tree.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Repo is a git repository rooted at Root.
type Repo struct {
	Root string
}

// Change is one staged path as reported by git diff --name-status.
type Change struct {
	Status  byte // 'A', 'C', 'M' or 'R'
	Path    string
	OldPath string // set for renames and copies
}

// Open finds the top level of the repository containing dir.
func Open(ctx context.Context, dir string) (*Repo, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, errors.New("git not found on PATH")
	}
	out, err := runGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%s is not inside a git repository: %w", dir, err)
	}
	return &Repo{Root: strings.TrimSpace(string(out))}, nil
}

// HasHead reports whether the repository has at least one commit.
func (r *Repo) HasHead(ctx context.Context) bool {
	_, err := runGit(ctx, r.Root, "rev-parse", "--verify", "--quiet", "HEAD")
	return err == nil
}

// StagedChanges returns every staged addition, copy, modification and
// rename, in git's path order. Without a HEAD commit every path is reported
// as added.
func (r *Repo) StagedChanges(ctx context.Context) ([]Change, error) {
	if !r.HasHead(ctx) {
		paths, err := r.listIndex(ctx)
		if err != nil {
			return nil, err
		}
		changes := make([]Change, len(paths))
		for i, p := range paths {
			changes[i] = Change{Status: 'A', Path: p}
		}
		return changes, nil
	}
	out, err := runGit(ctx, r.Root, "diff", "--staged", "--name-status", "-z",
		"--find-renames", "--diff-filter=ACMR")
	if err != nil {
		return nil, fmt.Errorf("listing staged changes: %w", err)
	}
	return parseNameStatus(splitNUL(out))
}

// Show returns the content of path at rev. An empty rev reads the index,
// that is the staged version.
func (r *Repo) Show(ctx context.Context, rev, path string) ([]byte, error) {
	out, err := runGit(ctx, r.Root, "show", rev+":"+path)
	if err != nil {
		if rev == "" {
			rev = "index"
		}
		return nil, fmt.Errorf("reading %s at %s: %w", path, rev, err)
	}
	return out, nil
}

func (r *Repo) listIndex(ctx context.Context) ([]string, error) {
	out, err := runGit(ctx, r.Root, "ls-files", "--cached", "-z")
	if err != nil {
		return nil, fmt.Errorf("listing index: %w", err)
	}
	return splitNUL(out), nil
}

// parseNameStatus reads -z --name-status output: a status field followed by
// one path, or two for renames and copies.
func parseNameStatus(fields []string) ([]Change, error) {
	var changes []Change
	for i := 0; i < len(fields); i++ {
		status := fields[i]
		if status == "" {
			continue
		}
		c := Change{Status: status[0]}
		switch c.Status {
		case 'R', 'C':
			if i+2 >= len(fields) {
				return nil, fmt.Errorf("truncated name-status entry %q", status)
			}
			c.OldPath, c.Path = fields[i+1], fields[i+2]
			i += 2
		default:
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("truncated name-status entry %q", status)
			}
			c.Path = fields[i+1]
			i++
		}
		changes = append(changes, c)
	}
	return changes, nil
}

func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

func splitNUL(out []byte) []string {
	s := strings.TrimRight(string(out), "\x00")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\x00")
}
