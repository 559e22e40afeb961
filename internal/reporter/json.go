package reporter

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/yamlvet/yamlvet/internal/aggregate"
)

// JSONReporter formats a validation result as JSON output.
//
// The document mirrors aggregate.Result: the validated file, the syntax
// verdict, the full ordered issue list, and the per-severity summary.
type JSONReporter struct {
	writer io.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

// Report implements Reporter.
func (r *JSONReporter) Report(result aggregate.Result, _ []byte) error {
	// Normalize paths to forward slashes for cross-platform consistency
	result.FilePath = filepath.ToSlash(result.FilePath)
	for i := range result.Issues {
		result.Issues[i].FilePath = filepath.ToSlash(result.Issues[i].FilePath)
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
