package terse

import (
	"fmt"
	"strings"
)

// InputShapeError is returned when a report spanning several files is
// formatted under PolicyReject.
type InputShapeError struct {
	Files []string
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("lint reporting applied to more than one file at once (%d files: %s)",
		len(e.Files), strings.Join(e.Files, ", "))
}
