package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/crateval-dev/crateval/internal/domain/validation"
	"github.com/crateval-dev/crateval/internal/domain/values"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// TableFormatter renders the report as a human-readable summary.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a table formatter with colors enabled.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w, EnableColor: true}
}

func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the report as a table.
//
//nolint:errcheck // terminal output is best-effort
func (f *TableFormatter) Format(report *validation.Report) error {
	rule := f.colorize(strings.Repeat("─", 72), colorGray)

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintf(f.writer, "Target:    %s\n", f.colorize(report.Target, colorBold))
	fmt.Fprintf(f.writer, "Profile:   %s\n", report.Profile)
	fmt.Fprintf(f.writer, "Threshold: %s\n", report.Threshold)
	fmt.Fprintf(f.writer, "Run:       %s\n", report.RunID)
	fmt.Fprintf(f.writer, "Duration:  %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer, rule)

	if len(report.Requirements) == 0 {
		fmt.Fprintln(f.writer, "No requirements executed.")
	}
	for _, req := range report.Requirements {
		f.formatRequirement(report, req)
	}

	fmt.Fprintln(f.writer, rule)
	f.formatVerdict(report)
	return nil
}

func (f *TableFormatter) formatRequirement(report *validation.Report, req validation.RequirementReport) {
	marker := f.colorize("PASS", colorGreen)
	if !req.Passed {
		marker = f.colorize("FAIL", colorRed)
	}
	fmt.Fprintf(f.writer, "[%s] %-12s %s (%s)\n", marker, req.Severity, req.Name, req.Identifier)

	if req.Passed {
		return
	}
	for _, issue := range report.Issues {
		if issue.Requirement != req.Identifier {
			continue
		}
		location := ""
		if issue.ResultPath != "" {
			location = " " + f.colorize(issue.ResultPath, colorGray)
		}
		fmt.Fprintf(f.writer, "       %s %s%s\n", f.colorize("·", colorGray), issue.Message, location)
	}
}

func (f *TableFormatter) formatVerdict(report *validation.Report) {
	failed := len(report.FailedRequirementIDs())
	passed := len(report.Requirements) - failed

	if report.Passed {
		fmt.Fprintf(f.writer, "%s  %d requirement(s) passed, %d issue(s) below threshold\n",
			f.colorize("VALID", colorGreen+colorBold), passed, len(report.Issues))
		return
	}
	fmt.Fprintf(f.writer, "%s  %d requirement(s) failed, %d issue(s)\n",
		f.colorize("INVALID", colorRed+colorBold), failed, len(report.Issues))
	f.formatSeverityBreakdown(report)
}

func (f *TableFormatter) formatSeverityBreakdown(report *validation.Report) {
	counts := make(map[string]int)
	for _, issue := range report.Issues {
		counts[issue.Severity.String()]++
	}
	for _, severity := range []values.Severity{values.SevRequired, values.SevRecommended, values.SevOptional} {
		if n := counts[severity.String()]; n > 0 {
			code := colorYellow
			if severity.Equals(values.SevRequired) {
				code = colorRed
			}
			fmt.Fprintf(f.writer, "  %s: %d\n", f.colorize(severity.String(), code), n)
		}
	}
}
