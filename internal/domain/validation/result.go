package validation

import (
	"sort"
	"sync"
	"time"

	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/domain/values"
)

// Issue is a single recorded violation with message, severity and
// optional locational metadata.
type Issue struct {
	Severity   values.Severity
	Message    string
	FocusNode  string
	ResultPath string
	Value      string
	Check      entities.Check
}

// CheckIdentifier returns the identifier of the check that raised the
// issue, or empty if the issue is not attributed.
func (i Issue) CheckIdentifier() string {
	if i.Check == nil {
		return ""
	}
	return i.Check.Identifier()
}

type requirementOutcome struct {
	requirement *entities.Requirement
	passed      bool
}

type checkOutcome struct {
	check  entities.Check
	passed bool
}

// Result is the aggregated, queryable outcome of one validation run.
// It is owned by the Context, written exclusively by the check runner
// and the orchestrator on the run's single thread, and treated as
// immutable once the run completes. The mutex exists for implementations
// that parallelize check execution; it also upholds the guarantee that
// event subscribers read fully written state.
type Result struct {
	mu sync.Mutex

	runID             values.RunID
	targetPath        string
	profileIdentifier string
	threshold         values.Severity

	startTime time.Time
	endTime   time.Time

	issues       []Issue
	requirements []requirementOutcome
	checks       []checkOutcome
}

// NewResult creates an empty result for a run.
func NewResult(runID values.RunID, targetPath, profileIdentifier string, threshold values.Severity) *Result {
	return &Result{
		runID:             runID,
		targetPath:        targetPath,
		profileIdentifier: profileIdentifier,
		threshold:         threshold,
		startTime:         time.Now(),
	}
}

// RunID returns the identifier of the run that produced this result.
func (r *Result) RunID() values.RunID {
	return r.runID
}

// TargetPath returns the validated target reference.
func (r *Result) TargetPath() string {
	return r.targetPath
}

// ProfileIdentifier returns the identifier of the requested profile.
func (r *Result) ProfileIdentifier() string {
	return r.profileIdentifier
}

// Threshold returns the run's configured severity threshold.
func (r *Result) Threshold() values.Severity {
	return r.threshold
}

// StartTime returns when the run began.
func (r *Result) StartTime() time.Time {
	return r.startTime
}

// Duration returns the run duration (zero until Finalize).
func (r *Result) Duration() time.Duration {
	if r.endTime.IsZero() {
		return 0
	}
	return r.endTime.Sub(r.startTime)
}

// Finalize marks the run complete. After Finalize the result is treated
// as read-only.
func (r *Result) Finalize() {
	r.endTime = time.Now()
}

// ===== MUTATORS (run-time only) =====

// AddError records an issue at the check's severity with no location
// metadata. This is the append operation native test procedures use.
func (r *Result) AddError(message string, check entities.Check) {
	severity := values.SevRequired
	if check != nil {
		severity = check.Severity()
	}
	r.AddIssue(Issue{
		Severity: severity,
		Message:  message,
		Check:    check,
	})
}

// AddIssue appends a fully specified issue.
func (r *Result) AddIssue(issue Issue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issues = append(r.issues, issue)
}

// AddCheckOutcome records a check's pass/fail state in execution order.
func (r *Result) AddCheckOutcome(check entities.Check, passed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, checkOutcome{check: check, passed: passed})
}

// AddRequirementOutcome records a requirement's pass/fail state in
// execution order.
func (r *Result) AddRequirementOutcome(req *entities.Requirement, passed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requirements = append(r.requirements, requirementOutcome{requirement: req, passed: passed})
}

// ===== QUERIES =====

// Passed reports the verdict at the run's configured threshold.
func (r *Result) Passed() bool {
	return r.PassedAt(r.threshold)
}

// PassedAt reports true iff no issue of severity >= threshold exists.
func (r *Result) PassedAt(threshold values.Severity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, issue := range r.issues {
		if issue.Severity.IsHigherOrEqual(threshold) {
			return false
		}
	}
	return true
}

// Issues returns all recorded issues in recording order.
func (r *Result) Issues() []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Issue, len(r.issues))
	copy(out, r.issues)
	return out
}

// IssueCount returns the number of recorded issues.
func (r *Result) IssueCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.issues)
}

// FailedRequirements returns the requirements recorded as failed, in
// execution order.
func (r *Result) FailedRequirements() []*entities.Requirement {
	return r.requirementsWhere(false)
}

// PassedRequirements returns the requirements recorded as passed, in
// execution order.
func (r *Result) PassedRequirements() []*entities.Requirement {
	return r.requirementsWhere(true)
}

func (r *Result) requirementsWhere(passed bool) []*entities.Requirement {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entities.Requirement
	for _, rec := range r.requirements {
		if rec.passed == passed {
			out = append(out, rec.requirement)
		}
	}
	return out
}

// FailedChecks returns the checks recorded as failed, in execution order.
func (r *Result) FailedChecks() []entities.Check {
	return r.checksWhere(false)
}

// PassedChecks returns the checks recorded as passed, in execution order.
func (r *Result) PassedChecks() []entities.Check {
	return r.checksWhere(true)
}

func (r *Result) checksWhere(passed bool) []entities.Check {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entities.Check
	for _, rec := range r.checks {
		if rec.passed == passed {
			out = append(out, rec.check)
		}
	}
	return out
}

// FailedChecksByRequirement returns the failed checks of a requirement,
// ordered by severity descending then identifier, which is the stable
// order reports display them in.
func (r *Result) FailedChecksByRequirement(req *entities.Requirement) []entities.Check {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entities.Check
	for _, rec := range r.checks {
		if !rec.passed && rec.check.Requirement() == req {
			out = append(out, rec.check)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Severity().Equals(out[j].Severity()) {
			return out[i].Severity().IsHigherThan(out[j].Severity())
		}
		return out[i].Identifier() < out[j].Identifier()
	})
	return out
}

// IssuesByCheck returns the issues raised by a check, in recording order.
func (r *Result) IssuesByCheck(check entities.Check) []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Issue
	for _, issue := range r.issues {
		if issue.Check == check {
			out = append(out, issue)
		}
	}
	return out
}
