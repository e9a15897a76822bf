// Package log provides the verbose trace output enabled by --verbose.
package log

import (
	"fmt"
	"io"
	"sync"
)

// Logger writes verbose diagnostic messages when Enabled is true.
// Output goes to the configured writer (typically stderr). It is safe for
// concurrent use; each message is written in one call.
type Logger struct {
	Enabled bool
	W       io.Writer

	mu sync.Mutex
}

// Printf writes a formatted message to W when Enabled is true.
// It is a no-op when Enabled is false or the Logger is nil.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Enabled {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.W, "difflint: "+format+"\n", args...)
}
