package lintdiff_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/endlessm/difflint/internal/lintdiff"
	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedEqual(t *testing.T) {
	out := types.LintOutput{Lines: []string{"a.js|W033|x"}}
	d, err := lintdiff.Unified("a.js", "a.js", out, out)
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestUnifiedNoContext(t *testing.T) {
	old := types.LintOutput{Lines: []string{
		"a.js|W030|one",
		"a.js|W033|two",
		"a.js|W098|three",
	}}
	cur := types.LintOutput{Lines: []string{
		"a.js|W030|one",
		"a.js|W033|two",
		"a.js|W041|new",
		"a.js|W098|three",
	}}
	d, err := lintdiff.Unified("a.js", "a.js", old, cur)
	require.NoError(t, err)
	assert.Equal(t, "--- a.js\n+++ a.js\n@@ -2,0 +3 @@\n+a.js|W041|new\n", d)

	added, err := lintdiff.Introduced(d)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.js|W041|new"}, added)
}

func TestIntroducedIgnoresRemovals(t *testing.T) {
	old := types.LintOutput{Lines: []string{"a.js|W030|one", "a.js|W033|two"}}
	cur := types.LintOutput{Lines: []string{"a.js|W033|two"}}
	d, err := lintdiff.Unified("a.js", "a.js", old, cur)
	require.NoError(t, err)
	require.NotEmpty(t, d)

	added, err := lintdiff.Introduced(d)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestIntroducedReplacement(t *testing.T) {
	old := types.LintOutput{Lines: []string{"old.js|W033|two"}}
	cur := types.LintOutput{Lines: []string{"new.js|W033|two", "new.js|W099|more"}}
	d, err := lintdiff.Unified("old.js", "new.js", old, cur)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d, "--- old.js\n+++ new.js\n"))

	added, err := lintdiff.Introduced(d)
	require.NoError(t, err)
	assert.Equal(t, []string{"new.js|W033|two", "new.js|W099|more"}, added)
}

func TestIntroducedSkipsNonTerseLines(t *testing.T) {
	d := "--- a.js\n+++ a.js\n@@ -0,0 +1,2 @@\n+not a lint line\n+a.js|only-one-pipe\n"
	added, err := lintdiff.Introduced(d)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestIntroducedEmptySegments(t *testing.T) {
	batch := types.Batch{Filename: "a.js", Issues: []types.Issue{
		{Message: "Missing space after keyword"},
		{Code: "W099"},
	}}
	staged := types.LintOutput{Lines: terse.Formatter{}.Lines(batch, terse.CodeLabeler{})}

	d, err := lintdiff.Unified("a.js", "a.js", types.LintOutput{}, staged)
	require.NoError(t, err)
	require.Contains(t, d, "+a.js||Missing space after keyword\n")

	added, err := lintdiff.Introduced(d)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.js||Missing space after keyword", "a.js|W099|"}, added)
}

func TestWriteLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), lintdiff.DefaultLogFile)
	result := &types.CheckResult{
		NewIssues: true,
		Files: []types.FileReport{{
			Path:     "b.js",
			Status:   types.StatusAdded,
			Output:   "b.js|W033|Missing semicolon.\n",
			Warnings: true,
		}},
	}
	now := time.Date(2024, 3, 5, 14, 7, 9, 123456000, time.FixedZone("X", 3600))
	require.NoError(t, lintdiff.WriteLog(path, result, now))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05 13:07:09.123456\n\n\n\nb.js\nb.js|W033|Missing semicolon.\n", string(data))
}

func TestWriteLogRemovesStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), lintdiff.DefaultLogFile)
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, lintdiff.WriteLog(path, &types.CheckResult{}, time.Now()))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// A missing log is not an error.
	require.NoError(t, lintdiff.WriteLog(path, &types.CheckResult{}, time.Now()))
}
