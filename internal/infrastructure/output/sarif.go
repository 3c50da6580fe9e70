package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/crateval-dev/crateval/internal/domain/validation"
	"github.com/crateval-dev/crateval/internal/domain/values"
	"github.com/crateval-dev/crateval/internal/version"
)

// SARIFFormatter writes the report as SARIF 2.1.0 JSON. Requirements
// map to SARIF rules; every executed requirement produces a result and
// every issue produces one more, located at the offending path when
// the issue carries one.
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a SARIF formatter.
func NewSARIFFormatter(w io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: w}
}

// Format writes the report as SARIF.
func (f *SARIFFormatter) Format(report *validation.Report) error {
	doc := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("crateval", "https://crateval.dev")
	engineVersion := version.Get().Version
	run.Tool.Driver.Version = &engineVersion

	addRules(run, report)
	addResults(run, report)
	addInvocation(run, report)

	props := sarif.NewPropertyBag()
	props.Add("profile", report.Profile)
	props.Add("threshold", report.Threshold.String())
	props.Add("runId", report.RunID.String())
	run.WithProperties(props)

	doc.AddRun(run)
	if err := doc.Write(f.writer); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}
	_, err := f.writer.Write([]byte("\n"))
	return err
}

// addRules converts requirement definitions to SARIF rules.
func addRules(run *sarif.Run, report *validation.Report) {
	for _, req := range report.Requirements {
		rule := sarif.NewReportingDescriptor().WithID(req.Identifier)
		rule.WithName(req.Name)

		name := req.Name
		if name == "" {
			name = req.Identifier
		}
		rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &name})
		rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{
			Level: severityToLevel(req.Severity),
		})

		props := sarif.NewPropertyBag()
		props.Add("severity", req.Severity.String())
		props.Add("profile", req.Profile)
		rule.WithProperties(props)

		run.Tool.Driver.AddRule(rule)
	}
}

// addResults emits one result per requirement verdict and one per
// recorded issue.
func addResults(run *sarif.Run, report *validation.Report) {
	for _, req := range report.Requirements {
		if !req.Passed {
			continue
		}
		result := sarif.NewRuleResult(req.Identifier)
		result.Kind = "pass"
		result.Level = "note"
		result.Message = sarif.NewTextMessage(fmt.Sprintf("Requirement %s satisfied", req.Identifier))
		run.AddResult(result)
	}

	for _, issue := range report.Issues {
		ruleID := issue.Requirement
		if ruleID == "" {
			ruleID = issue.Check
		}
		result := sarif.NewRuleResult(ruleID)
		result.Kind = "fail"
		result.Level = severityToLevel(issue.Severity)
		result.Message = sarif.NewTextMessage(issue.Message)

		if issue.ResultPath != "" {
			location := sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithURI(issue.ResultPath))
			result.Locations = []*sarif.Location{sarif.NewLocation().WithPhysicalLocation(location)}
		}

		props := sarif.NewPropertyBag()
		props.Add("check", issue.Check)
		props.Add("severity", issue.Severity.String())
		if issue.FocusNode != "" {
			props.Add("focusNode", issue.FocusNode)
		}
		if issue.Value != "" {
			props.Add("value", issue.Value)
		}
		result.WithProperties(props)

		run.AddResult(result)
	}
}

func addInvocation(run *sarif.Run, report *validation.Report) {
	invocation := sarif.NewInvocation()
	invocation.ExecutionSuccessful = ptrBool(true)

	start := report.StartTime.UTC().Format("2006-01-02T15:04:05.000Z")
	end := report.StartTime.Add(report.Duration).UTC().Format("2006-01-02T15:04:05.000Z")
	invocation.StartTimeUtc = &start
	invocation.EndTimeUtc = &end

	run.AddInvocation(invocation)
}

// severityToLevel maps requirement severity to SARIF level.
func severityToLevel(severity values.Severity) string {
	switch {
	case severity.Equals(values.SevRequired):
		return "error"
	case severity.Equals(values.SevRecommended):
		return "warning"
	default:
		return "note"
	}
}

func ptrBool(b bool) *bool {
	return &b
}
