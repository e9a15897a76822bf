package source_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/endlessm/difflint/internal/source"
	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
)

func decode(t *testing.T, name, report string) (source.Source, []types.Batch) {
	t.Helper()
	s, err := source.Lookup(name)
	require.NoError(t, err)
	batches, err := s.Decode(strings.NewReader(report))
	require.NoError(t, err)
	return s, batches
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{"eslint", "jscs", "jshint", "pycodestyle", "pyflakes"}, source.Names())
	_, err := source.Lookup("pep9")
	require.Error(t, err)
	require.Contains(t, err.Error(), "pep9")
}

func TestESLint(t *testing.T) {
	report := `[
  {"filePath": "/repo/a.js", "messages": [
    {"ruleId": "no-console", "severity": 1, "message": "Unexpected console statement.", "line": 3, "column": 1},
    {"ruleId": null, "fatal": true, "severity": 2, "message": "Parsing error: Unexpected token }", "line": 9, "column": 2},
    {"ruleId": "semi", "severity": 2, "message": "Missing semicolon.", "line": 1, "column": 10}
  ]},
  {"filePath": "/repo/b.js", "messages": []}
]`
	s, batches := decode(t, "eslint", report)
	require.Len(t, batches, 2)
	require.Equal(t, "/repo/a.js", batches[0].Filename)
	require.Len(t, batches[0].Issues, 3)
	require.Equal(t, "no-console", batches[0].Issues[0].Rule)
	require.Empty(t, batches[0].Issues[1].Rule)
	require.Empty(t, batches[1].Issues)

	lines := terse.Formatter{}.Lines(batches[0], s)
	require.Equal(t, []string{
		"/repo/a.js|error|Missing semicolon.",
		"/repo/a.js|error|Parsing error: Unexpected token }",
		"/repo/a.js|warning|Unexpected console statement.",
	}, lines)
}

func TestESLintEmptyAndInvalid(t *testing.T) {
	_, batches := decode(t, "eslint", "  \n")
	require.Empty(t, batches)

	s, err := source.Lookup("eslint")
	require.NoError(t, err)
	_, err = s.Decode(strings.NewReader("Oops! Something went wrong!"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "eslint")
}

func TestJSHintCheckstyle(t *testing.T) {
	report := `<?xml version="1.0" encoding="utf-8"?>
<checkstyle version="4.3">
	<file name="stdin">
		<error line="2" column="12" severity="warning" message="Missing semicolon." source="jshint.W033" />
		<error line="5" column="1" severity="error" message="Unmatched '{'." source="jshint.E019" />
	</file>
</checkstyle>`
	s, batches := decode(t, "jshint", report)
	require.Len(t, batches, 1)
	require.Equal(t, "stdin", batches[0].Filename)

	lines := terse.Formatter{}.Lines(source.Reattribute(batches, "lib/x.js")[0], s)
	require.Equal(t, []string{
		"lib/x.js|E019|Unmatched '{'.",
		"lib/x.js|W033|Missing semicolon.",
	}, lines)
}

func TestJSHintNoFiles(t *testing.T) {
	_, batches := decode(t, "jshint", `<?xml version="1.0" encoding="utf-8"?><checkstyle version="4.3"></checkstyle>`)
	require.Empty(t, batches)
}

func TestJSCS(t *testing.T) {
	report := `{
  "b.js": [{"line": 1, "column": 0, "message": "Illegal space before opening round brace", "rule": "requireSpacesInFunction"}],
  "a.js": [{"line": 4, "column": 2, "message": "Expected indentation of 4 characters"}]
}`
	s, batches := decode(t, "jscs", report)
	require.Len(t, batches, 2)
	require.Equal(t, "a.js", batches[0].Filename)
	require.Equal(t, "b.js", batches[1].Filename)

	lines, err := terse.Formatter{Policy: terse.PolicyPerFile}.Format(batches, s)
	require.NoError(t, err)
	require.Equal(t, []string{
		"a.js||Expected indentation of 4 characters",
		"b.js|requireSpacesInFunction|Illegal space before opening round brace",
	}, lines)

	_, err = terse.Formatter{}.Format(batches, s)
	require.Error(t, err)
}

func TestPycodestyle(t *testing.T) {
	report := "stdin:1:80: E501 line too long (81 > 79 characters)\n" +
		"stdin:3:1: E302 expected 2 blank lines, found 1\n" +
		"not a report line\n" +
		"other.py:1:1: W291 trailing whitespace\r\n"
	s, batches := decode(t, "pycodestyle", report)
	require.Len(t, batches, 2)
	require.Equal(t, "stdin", batches[0].Filename)
	require.Len(t, batches[0].Issues, 2)
	require.Equal(t, "other.py", batches[1].Filename)
	require.Equal(t, "trailing whitespace", batches[1].Issues[0].Message)

	lines := terse.Formatter{}.Lines(batches[0], s)
	require.Equal(t, []string{
		"stdin|E302|expected 2 blank lines, found 1",
		"stdin|E501|line too long (81 > 79 characters)",
	}, lines)
}

func TestPyflakes(t *testing.T) {
	report := "<stdin>:1:1: 'os' imported but unused\n" +
		"<stdin>:4: undefined name 'foo'\n" +
		"<stdin>: problem decoding source\n"
	s, batches := decode(t, "pyflakes", report)
	require.Len(t, batches, 1)
	require.Len(t, batches[0].Issues, 3)
	require.True(t, batches[0].Issues[2].Fatal)

	lines := terse.Formatter{}.Lines(source.Reattribute(batches, "pkg/mod.py")[0], s)
	require.Equal(t, []string{
		"pkg/mod.py|FATAL|problem decoding source",
		"pkg/mod.py|FLAKE|'os' imported but unused",
		"pkg/mod.py|FLAKE|undefined name 'foo'",
	}, lines)
}

func TestPyflakesSyntaxError(t *testing.T) {
	report := "<stdin>:3:13: invalid syntax\n" +
		"    x = \"a:1: b\" +\n" +
		"            ^\n"
	s, batches := decode(t, "pyflakes", report)
	require.Len(t, batches, 1, "the echoed source line is not an issue")
	require.Len(t, batches[0].Issues, 1)

	lines := terse.Formatter{}.Lines(batches[0], s)
	require.Equal(t, []string{"<stdin>|SYNTAX|invalid syntax"}, lines)
}

func TestPyflakesSyntaxErrorWithoutColumn(t *testing.T) {
	report := "<stdin>:1: 'os' imported but unused\n" +
		"<stdin>:2: unexpected EOF while parsing\n" +
		"\n" +
		"^\n"
	s, batches := decode(t, "pyflakes", report)
	require.Len(t, batches, 1)

	lines := terse.Formatter{}.Lines(batches[0], s)
	require.Equal(t, []string{
		"<stdin>|FLAKE|'os' imported but unused",
		"<stdin>|SYNTAX|unexpected EOF while parsing",
	}, lines)
}

func TestReattributeMerges(t *testing.T) {
	in := []types.Batch{
		{Filename: "<stdin>", Issues: []types.Issue{{Message: "a"}}},
		{Filename: "    x = \"a", Issues: []types.Issue{{Message: "b"}, {Message: "c"}}},
	}
	out := source.Reattribute(in, "a.py")
	require.Len(t, out, 1)
	require.Equal(t, "a.py", out[0].Filename)
	require.Equal(t, []types.Issue{{Message: "a"}, {Message: "b"}, {Message: "c"}}, out[0].Issues)

	require.Nil(t, source.Reattribute(nil, "a.py"))
}

func TestReattributeDoesNotMutate(t *testing.T) {
	in := []types.Batch{{Filename: "stdin", Issues: []types.Issue{{Message: "x"}}}}
	out := source.Reattribute(in, "a.py")
	require.Equal(t, "stdin", in[0].Filename)
	require.Equal(t, "a.py", out[0].Filename)
	require.Equal(t, in[0].Issues, out[0].Issues)
}
