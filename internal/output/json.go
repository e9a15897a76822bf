package output

import (
	"encoding/json"
	"io"

	"github.com/endlessm/difflint/internal/types"
)

// JSONFormatter outputs the check result as a JSON object.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, result *types.CheckResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
