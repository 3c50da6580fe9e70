package validation

import (
	"context"

	"github.com/crateval-dev/crateval/internal/domain/values"
)

// Violation is one constraint violation reported by the external
// reasoning collaborator.
type Violation struct {
	FocusNode  string
	ResultPath string
	Value      string
	Message    string
	Severity   values.Severity
}

// Reasoner is the external reasoning collaborator that evaluates shape
// checks against the descriptor document. The call is synchronous; the
// engine threads no timeout through it beyond the context.
type Reasoner interface {
	Evaluate(ctx context.Context, descriptorPath, shapePath string, inference values.InferenceMode) ([]Violation, error)
}
