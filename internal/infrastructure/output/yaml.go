package output

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/crateval-dev/crateval/internal/domain/validation"
)

// YAMLFormatter writes the report as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the report.
func (f *YAMLFormatter) Format(report *validation.Report) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))
	if err := encoder.Encode(report); err != nil {
		return err
	}
	return encoder.Close()
}
