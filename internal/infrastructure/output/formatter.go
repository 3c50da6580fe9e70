// Package output provides formatters for validation reports.
package output

import (
	"fmt"
	"io"

	"github.com/crateval-dev/crateval/internal/domain/validation"
)

// Formatter renders one validation report to its writer.
type Formatter interface {
	Format(report *validation.Report) error
}

// Options tunes formatter construction.
type Options struct {
	// Indent enables indented JSON output.
	Indent bool
	// EnableColor toggles ANSI colors on the table formatter.
	EnableColor bool
}

// NewFormatter returns a formatter for the given format name.
func NewFormatter(format string, writer io.Writer, options Options) (Formatter, error) {
	switch format {
	case "table":
		f := NewTableFormatter(writer)
		f.EnableColor = options.EnableColor
		return f, nil
	case "json":
		return NewJSONFormatter(writer, options.Indent), nil
	case "yaml":
		return NewYAMLFormatter(writer), nil
	case "sarif":
		return NewSARIFFormatter(writer), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: %v)", format, SupportedFormats())
	}
}

// SupportedFormats lists the available format names.
func SupportedFormats() []string {
	return []string{"table", "json", "yaml", "sarif"}
}
