package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/crateval-dev/crateval/internal/domain/validation"
	"github.com/crateval-dev/crateval/internal/infrastructure/output"
)

// writeReport renders the report in the requested format, to stdout or
// to the given file.
func writeReport(report *validation.Report, format, outFile string, color bool) error {
	writer := os.Stdout
	if outFile != "" {
		file, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()
		writer = file
		color = false
	}

	formatter, err := output.NewFormatter(format, writer, output.Options{
		Indent:      true,
		EnableColor: color,
	})
	if err != nil {
		return err
	}
	return formatter.Format(report)
}

// stdoutIsTerminal reports whether stdout is attached to a terminal.
// Colors and interactive prompts are disabled when it is not.
func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
