package lintdiff

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/endlessm/difflint/internal/output"
	"github.com/endlessm/difflint/internal/types"
)

// DefaultLogFile is the report written at the repository root.
const DefaultLogFile = "lintdiff.log"

// logTimeFormat matches the timestamp header of earlier lintdiff.log files.
const logTimeFormat = "2006-01-02 15:04:05.000000"

// WriteLog writes the report to path when result has new issues, headed by
// the UTC time now. Otherwise it removes any log left by an earlier run.
func WriteLog(path string, result *types.CheckResult, now time.Time) error {
	if !result.NewIssues {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing stale %s: %w", path, err)
		}
		return nil
	}
	var buf bytes.Buffer
	buf.WriteString(now.UTC().Format(logTimeFormat) + "\n")
	if err := (&output.TextFormatter{}).Format(&buf, result); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
