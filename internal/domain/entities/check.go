package entities

import (
	"github.com/crateval-dev/crateval/internal/domain/values"
)

// Check is an executable test that verifies part of a requirement and
// emits issues on failure. There are exactly two variants: NativeCheck
// (first-class test procedures assembled at load time) and ShapeCheck
// (delegated to the external reasoner). The interface is sealed via the
// unexported attachTo method.
//
// Checks are stateless and reusable across runs. Any derived data a check
// needs (such as the parsed descriptor) lives on the ValidationTarget,
// never on the check instance.
type Check interface {
	Identifier() string
	Name() string
	Description() string
	Level() values.Level
	Severity() values.Severity

	// Requirement returns the owning requirement (back-reference).
	Requirement() *Requirement

	attachTo(r *Requirement)
}

// ValidationTarget is the per-run view that test procedures operate on.
// It carries the target reference, the lazily parsed descriptor document
// and the issue sink of the current run.
type ValidationTarget interface {
	// TargetPath returns the data package root path or URI.
	TargetPath() string

	// DescriptorPath returns the absolute path of the descriptor document.
	DescriptorPath() string

	// RelDescriptorPath returns the descriptor path relative to the target,
	// for human-readable messages.
	RelDescriptorPath() string

	// Descriptor returns the parsed descriptor document, loading and
	// caching it on first use. The cache is keyed by target path.
	Descriptor() (map[string]any, error)

	// AddError records an issue at the check's severity.
	AddError(message string, check Check)

	// AddIssue records an issue with optional location metadata.
	AddIssue(message string, check Check, focusNode, resultPath, value string)
}

// ProcedureFunc is a single test procedure of a native check. It reports
// pass/fail and records issues on the target as a side effect.
type ProcedureFunc func(target ValidationTarget, check Check) bool

// TestProcedure is a named, first-class test procedure. Procedures are
// bound to checks when profiles are loaded, not discovered by reflection.
type TestProcedure struct {
	Name string
	Fn   ProcedureFunc
}

// baseCheck carries the fields shared by both check variants.
type baseCheck struct {
	identifier  string
	name        string
	description string
	level       values.Level
	requirement *Requirement
}

func (b *baseCheck) Identifier() string        { return b.identifier }
func (b *baseCheck) Name() string              { return b.name }
func (b *baseCheck) Description() string       { return b.description }
func (b *baseCheck) Level() values.Level       { return b.level }
func (b *baseCheck) Severity() values.Severity { return b.level.Severity() }
func (b *baseCheck) Requirement() *Requirement { return b.requirement }
func (b *baseCheck) attachTo(r *Requirement)   { b.requirement = r }

// NativeCheck runs one or more independently invoked test procedures.
// The check passes iff all of its procedures pass.
type NativeCheck struct {
	baseCheck
	procedures []TestProcedure
}

// NewNativeCheck creates a native check from its ordered test procedures.
func NewNativeCheck(identifier, name, description string, level values.Level, procedures []TestProcedure) *NativeCheck {
	return &NativeCheck{
		baseCheck: baseCheck{
			identifier:  identifier,
			name:        name,
			description: description,
			level:       level,
		},
		procedures: procedures,
	}
}

// Procedures returns the check's test procedures in declared order.
func (c *NativeCheck) Procedures() []TestProcedure {
	out := make([]TestProcedure, len(c.procedures))
	copy(out, c.procedures)
	return out
}

// ShapeCheck delegates evaluation to the external reasoning collaborator,
// translating its violations into issues. The check passes iff the
// reasoner reports zero violations.
type ShapeCheck struct {
	baseCheck
	shapePath string
}

// NewShapeCheck creates a shape check bound to a shape definition path.
func NewShapeCheck(identifier, name, description string, level values.Level, shapePath string) *ShapeCheck {
	return &ShapeCheck{
		baseCheck: baseCheck{
			identifier:  identifier,
			name:        name,
			description: description,
			level:       level,
		},
		shapePath: shapePath,
	}
}

// ShapePath returns the path of the shape definition the check evaluates.
func (c *ShapeCheck) ShapePath() string {
	return c.shapePath
}
