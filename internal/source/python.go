package source

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/endlessm/difflint/internal/terse"
	"github.com/endlessm/difflint/internal/types"
)

// Pycodestyle reads the default text output of pycodestyle (and pep8):
//
//	path:line:col: E501 line too long (82 > 79 characters)
type Pycodestyle struct {
	terse.CodeLabeler
}

var pycodestyleLine = regexp.MustCompile(`^(.+?):(\d+):(\d+): ([A-Z]\d+) (.*)$`)

func (*Pycodestyle) Name() string { return "pycodestyle" }

func (*Pycodestyle) Decode(r io.Reader) ([]types.Batch, error) {
	var g grouper
	err := scanLines(r, func(line string) {
		m := pycodestyleLine.FindStringSubmatch(line)
		if m == nil {
			return
		}
		g.add(m[1], types.Issue{
			Message:  m[5],
			Rule:     m[4],
			Code:     m[4],
			Filename: m[1],
			Line:     atoi(m[2]),
			Column:   atoi(m[3]),
		})
	})
	return g.batches, err
}

// Pyflakes reads pyflakes text output. Ordinary messages are labeled FLAKE,
// syntax errors SYNTAX and files pyflakes could not decode FATAL.
//
// A syntax error is followed by the offending source line and a caret line
// pointing at the column; both are consumed with it.
type Pyflakes struct {
	terse.CodeLabeler
}

const (
	pyflakesCode       = "FLAKE"
	pyflakesSyntaxCode = "SYNTAX"
	pyflakesFatalCode  = "FATAL"
)

var (
	pyflakesLine  = regexp.MustCompile(`^(.+?):(\d+):(?:(\d+):)? (.*)$`)
	pyflakesFatal = regexp.MustCompile(`^(.+?): (problem decoding source)$`)
	pyflakesCaret = regexp.MustCompile(`^ *\^$`)
)

func (*Pyflakes) Name() string { return "pyflakes" }

func (*Pyflakes) Decode(r io.Reader) ([]types.Batch, error) {
	var lines []string
	if err := scanLines(r, func(line string) { lines = append(lines, line) }); err != nil {
		return nil, err
	}

	var g grouper
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if m := pyflakesLine.FindStringSubmatch(line); m != nil {
			issue := types.Issue{
				Message:  m[4],
				Code:     pyflakesCode,
				Filename: m[1],
				Line:     atoi(m[2]),
				Column:   atoi(m[3]),
			}
			if n := syntaxEcho(lines[i+1:]); n > 0 {
				issue.Code = pyflakesSyntaxCode
				i += n
			}
			g.add(m[1], issue)
			continue
		}
		if m := pyflakesFatal.FindStringSubmatch(line); m != nil {
			g.add(m[1], types.Issue{
				Message:  m[2],
				Code:     pyflakesFatalCode,
				Fatal:    true,
				Filename: m[1],
			})
		}
	}
	return g.batches, nil
}

// syntaxEcho returns how many of the leading lines are the source echo and
// caret pyflakes prints after a syntax error, or 0 when there are none.
func syntaxEcho(rest []string) int {
	switch {
	case len(rest) > 0 && pyflakesCaret.MatchString(rest[0]):
		return 1
	case len(rest) > 1 && pyflakesCaret.MatchString(rest[1]):
		return 2
	}
	return 0
}

func scanLines(r io.Reader, fn func(line string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		fn(strings.TrimRight(sc.Text(), "\r"))
	}
	return sc.Err()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
