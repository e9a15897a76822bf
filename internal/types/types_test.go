package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/endlessm/difflint/internal/types"
	"github.com/stretchr/testify/require"
)

func TestLintOutputText(t *testing.T) {
	tests := []struct {
		lines []string
		want  string
	}{
		{nil, ""},
		{[]string{"a.js|error|x"}, "a.js|error|x\n"},
		{[]string{"a.js|error|x", "a.js|warning|y"}, "a.js|error|x\na.js|warning|y\n"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, types.LintOutput{Lines: tt.lines}.Text())
	}
}

func TestLintOutputEqual(t *testing.T) {
	a := types.LintOutput{Lines: []string{"x", "y"}}
	require.True(t, a.Equal(types.LintOutput{Lines: []string{"x", "y"}, Warnings: true}))
	require.False(t, a.Equal(types.LintOutput{Lines: []string{"y", "x"}}))
	require.False(t, a.Equal(types.LintOutput{Lines: []string{"x"}}))
	require.True(t, types.LintOutput{}.Equal(types.LintOutput{Lines: []string{}}))
}

func TestFileReportIntroduced(t *testing.T) {
	require.True(t, types.FileReport{Status: types.StatusAdded, Output: "a|b|c\n", Warnings: true}.Introduced())
	require.True(t, types.FileReport{Status: types.StatusAdded, Warnings: true}.Introduced())
	require.False(t, types.FileReport{Status: types.StatusAdded}.Introduced())
	require.True(t, types.FileReport{Status: types.StatusModified, NewIssues: []string{"a|b|c"}}.Introduced())
	require.False(t, types.FileReport{Status: types.StatusRenamed, Diff: "-a|b|c\n"}.Introduced())
}

func TestCheckResultJSONDuration(t *testing.T) {
	r := types.CheckResult{
		Files:       []types.FileReport{{Path: "a.js", Status: types.StatusModified}},
		FilesLinted: 1,
		Duration:    1500 * time.Millisecond,
		Root:        "/repo",
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.Equal(t, float64(1500), parsed["duration_ms"])
	require.Equal(t, float64(1), parsed["files_linted"])
	require.NotContains(t, parsed, "Root")
}
