package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/endlessm/difflint/internal/git"
	"github.com/stretchr/testify/require"
)

func skipIfNoGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not on PATH")
	}
}

// newRepo initializes an empty repository and returns a helper running git in it.
func newRepo(t *testing.T) (string, func(args ...string)) {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
	run("init")
	run("config", "user.email", "test@test.com")
	run("config", "user.name", "test")
	return dir, run
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestStagedChanges(t *testing.T) {
	skipIfNoGit(t)
	ctx := context.Background()
	dir, run := newRepo(t)

	write(t, dir, "keep.js", "var a = 1;\n")
	write(t, dir, "old name.js", "var renamed = 1;\nvar x = 2;\nvar y = 3;\n")
	run("add", ".")
	run("commit", "-m", "init")

	write(t, dir, "keep.js", "var a = 2;\n")
	write(t, dir, "sub/new.py", "x = 1\n")
	run("mv", "old name.js", "new name.js")
	run("add", ".")

	// Unstaged edits are invisible to the index.
	write(t, dir, "keep.js", "var a = 3;\n")

	repo, err := git.Open(ctx, filepath.Join(dir, "sub"))
	require.NoError(t, err)
	require.True(t, repo.HasHead(ctx))

	changes, err := repo.StagedChanges(ctx)
	require.NoError(t, err)
	require.Equal(t, []git.Change{
		{Status: 'M', Path: "keep.js"},
		{Status: 'R', Path: "new name.js", OldPath: "old name.js"},
		{Status: 'A', Path: "sub/new.py"},
	}, changes)

	staged, err := repo.Show(ctx, "", "keep.js")
	require.NoError(t, err)
	require.Equal(t, "var a = 2;\n", string(staged))

	committed, err := repo.Show(ctx, "HEAD", "keep.js")
	require.NoError(t, err)
	require.Equal(t, "var a = 1;\n", string(committed))

	_, err = repo.Show(ctx, "HEAD", "sub/new.py")
	require.Error(t, err)
}

func TestStagedChangesWithoutHead(t *testing.T) {
	skipIfNoGit(t)
	ctx := context.Background()
	dir, run := newRepo(t)

	write(t, dir, "a.js", "a\n")
	write(t, dir, "b.py", "b\n")
	run("add", ".")

	repo, err := git.Open(ctx, dir)
	require.NoError(t, err)
	require.False(t, repo.HasHead(ctx))

	changes, err := repo.StagedChanges(ctx)
	require.NoError(t, err)
	require.Equal(t, []git.Change{
		{Status: 'A', Path: "a.js"},
		{Status: 'A', Path: "b.py"},
	}, changes)
}

func TestOpenNotARepo(t *testing.T) {
	skipIfNoGit(t)
	_, err := git.Open(context.Background(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not inside a git repository")
}
