package validation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/crateval-dev/crateval/internal/domain/values"
)

// Report is the exportable document form of a Result. Field names are
// stable across runs of the same input; re-parsing an exported report
// reproduces the failed requirement identifiers and the issue messages.
type Report struct {
	RunID     values.RunID    `json:"run_id" yaml:"run_id"`
	Target    string          `json:"target" yaml:"target"`
	Profile   string          `json:"profile" yaml:"profile"`
	Threshold values.Severity `json:"threshold" yaml:"threshold"`
	Passed    bool            `json:"passed" yaml:"passed"`

	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`

	Profiles     []ProfileReport     `json:"profiles" yaml:"profiles"`
	Requirements []RequirementReport `json:"requirements" yaml:"requirements"`
	Issues       []IssueReport       `json:"issues" yaml:"issues"`
}

// ProfileReport is the per-profile verdict.
type ProfileReport struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Passed     bool   `json:"passed" yaml:"passed"`
}

// RequirementReport is the per-requirement verdict, in execution order.
type RequirementReport struct {
	Identifier string          `json:"identifier" yaml:"identifier"`
	Profile    string          `json:"profile" yaml:"profile"`
	Name       string          `json:"name" yaml:"name"`
	Severity   values.Severity `json:"severity" yaml:"severity"`
	Passed     bool            `json:"passed" yaml:"passed"`
}

// IssueReport is one recorded violation, in recording order.
type IssueReport struct {
	Message     string          `json:"message" yaml:"message"`
	Severity    values.Severity `json:"severity" yaml:"severity"`
	ResultPath  string          `json:"result_path,omitempty" yaml:"result_path,omitempty"`
	Value       string          `json:"value,omitempty" yaml:"value,omitempty"`
	FocusNode   string          `json:"focus_node,omitempty" yaml:"focus_node,omitempty"`
	Check       string          `json:"check" yaml:"check"`
	Requirement string          `json:"requirement,omitempty" yaml:"requirement,omitempty"`
}

// NewReport builds the document form of a result.
func NewReport(result *Result) *Report {
	report := &Report{
		RunID:     result.RunID(),
		Target:    result.TargetPath(),
		Profile:   result.ProfileIdentifier(),
		Threshold: result.Threshold(),
		Passed:    result.Passed(),
		StartTime: result.StartTime(),
		Duration:  result.Duration(),
	}

	profilePassed := make(map[string]bool)
	var profileOrder []string

	result.mu.Lock()
	defer result.mu.Unlock()

	for _, rec := range result.requirements {
		profileID := ""
		if p := rec.requirement.Profile(); p != nil {
			profileID = p.Identifier
		}
		if _, seen := profilePassed[profileID]; !seen {
			profilePassed[profileID] = true
			profileOrder = append(profileOrder, profileID)
		}
		if !rec.passed {
			profilePassed[profileID] = false
		}

		report.Requirements = append(report.Requirements, RequirementReport{
			Identifier: rec.requirement.Identifier,
			Profile:    profileID,
			Name:       rec.requirement.Name,
			Severity:   rec.requirement.Severity(),
			Passed:     rec.passed,
		})
	}

	for _, id := range profileOrder {
		report.Profiles = append(report.Profiles, ProfileReport{
			Identifier: id,
			Passed:     profilePassed[id],
		})
	}

	for _, issue := range result.issues {
		requirementID := ""
		if issue.Check != nil && issue.Check.Requirement() != nil {
			requirementID = issue.Check.Requirement().Identifier
		}
		report.Issues = append(report.Issues, IssueReport{
			Message:     issue.Message,
			Severity:    issue.Severity,
			ResultPath:  issue.ResultPath,
			Value:       issue.Value,
			FocusNode:   issue.FocusNode,
			Check:       issue.CheckIdentifier(),
			Requirement: requirementID,
		})
	}

	return report
}

// ParseReport re-parses an exported report document.
func ParseReport(data []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &report, nil
}

// Bytes renders the report as indented JSON, the canonical export form.
func (r *Report) Bytes() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FailedRequirementIDs returns the identifiers of failed requirements,
// in execution order.
func (r *Report) FailedRequirementIDs() []string {
	var out []string
	for _, req := range r.Requirements {
		if !req.Passed {
			out = append(out, req.Identifier)
		}
	}
	return out
}

// IssueMessages returns all issue messages in recording order.
func (r *Report) IssueMessages() []string {
	var out []string
	for _, issue := range r.Issues {
		out = append(out, issue.Message)
	}
	return out
}
