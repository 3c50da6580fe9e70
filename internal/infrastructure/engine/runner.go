package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/domain/validation"
	"github.com/crateval-dev/crateval/internal/domain/values"
)

// CheckExecutionError reports a test procedure that panicked instead
// of returning a verdict.
type CheckExecutionError struct {
	CheckID   string
	Procedure string
	Cause     any
}

func (e *CheckExecutionError) Error() string {
	return fmt.Sprintf("check %s: procedure %s failed: %v", e.CheckID, e.Procedure, e.Cause)
}

// Runner executes one check against the run context. A faulting
// procedure never takes the run down: the fault becomes a REQUIRED
// severity issue on the result and the remaining procedures still run.
type Runner struct {
	reasoner validation.Reasoner
	logger   *slog.Logger
}

// NewRunner creates a runner. The reasoner may be nil when the
// profile set carries no shape checks.
func NewRunner(reasoner validation.Reasoner, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{reasoner: reasoner, logger: logger}
}

// Run executes the check and reports whether it passed along with the
// number of issues it added. All of those issues are on the result when
// Run returns.
func (r *Runner) Run(ctx context.Context, vctx *validation.Context, check entities.Check) (passed bool, issuesAdded int) {
	before := vctx.Result().IssueCount()
	switch c := check.(type) {
	case *entities.NativeCheck:
		passed = r.runNative(vctx, c)
	case *entities.ShapeCheck:
		passed = r.runShape(ctx, vctx, c)
	default:
		vctx.AddError(fmt.Sprintf("check %s has an unknown kind", check.Identifier()), check)
	}
	return passed, vctx.Result().IssueCount() - before
}

// runNative runs every procedure of the check; the check passes only
// when all of them do.
func (r *Runner) runNative(vctx *validation.Context, check *entities.NativeCheck) bool {
	passed := true
	for _, proc := range check.Procedures() {
		if !r.runProcedure(vctx, check, proc) {
			passed = false
		}
	}
	return passed
}

func (r *Runner) runProcedure(vctx *validation.Context, check *entities.NativeCheck, proc entities.TestProcedure) (passed bool) {
	defer func() {
		if cause := recover(); cause != nil {
			execErr := &CheckExecutionError{CheckID: check.Identifier(), Procedure: proc.Name, Cause: cause}
			r.logger.Error("test procedure panicked",
				"check", check.Identifier(),
				"procedure", proc.Name,
				"cause", cause)
			vctx.Result().AddIssue(validation.Issue{
				Severity: values.SevRequired,
				Message:  execErr.Error(),
				Check:    check,
			})
			passed = false
		}
	}()
	return proc.Fn(vctx, check)
}

// runShape delegates the check's shape file to the reasoner; the
// check passes only when the reasoner reports no violations.
func (r *Runner) runShape(ctx context.Context, vctx *validation.Context, check *entities.ShapeCheck) bool {
	if r.reasoner == nil {
		vctx.AddError(fmt.Sprintf("check %s needs a reasoner for shape %s, none is configured",
			check.Identifier(), check.ShapePath()), check)
		return false
	}

	violations, err := r.reasoner.Evaluate(ctx, vctx.DescriptorPath(), check.ShapePath(), vctx.Settings().Inference)
	if err != nil {
		vctx.AddError(fmt.Sprintf("evaluating shape %s: %v", check.ShapePath(), err), check)
		return false
	}

	for _, v := range violations {
		severity := v.Severity
		if severity.Equals(values.SevUnknown) {
			severity = check.Severity()
		}
		vctx.Result().AddIssue(validation.Issue{
			Severity:   severity,
			Message:    v.Message,
			FocusNode:  v.FocusNode,
			ResultPath: v.ResultPath,
			Value:      v.Value,
			Check:      check,
		})
	}
	return len(violations) == 0
}
