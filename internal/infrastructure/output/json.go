package output

import (
	"encoding/json"
	"io"

	"github.com/crateval-dev/crateval/internal/domain/validation"
)

// JSONFormatter writes the report as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{writer: w, indent: indent}
}

// Format writes the report.
func (f *JSONFormatter) Format(report *validation.Report) error {
	encoder := json.NewEncoder(f.writer)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(report)
}
