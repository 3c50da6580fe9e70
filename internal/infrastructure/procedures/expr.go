package procedures

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/crateval-dev/crateval/internal/domain/entities"
)

// Assert is a declarative assertion from a profile document: a boolean
// expression evaluated against the descriptor, with an optional
// message reported when it does not hold.
type Assert struct {
	Expr    string `yaml:"expr" json:"expr"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// CompileAssert compiles an assertion into a test procedure. The
// expression sees the parsed descriptor as `doc` and must evaluate to
// a boolean. Compilation happens at profile load time so a malformed
// expression fails the load, not the run.
func CompileAssert(a Assert) (entities.TestProcedure, error) {
	if a.Expr == "" {
		return entities.TestProcedure{}, fmt.Errorf("assert expression is required")
	}

	program, err := expr.Compile(a.Expr,
		expr.Env(map[string]any{"doc": map[string]any{}}),
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return entities.TestProcedure{}, fmt.Errorf("compiling assert %q: %w", a.Expr, err)
	}

	message := a.Message
	if message == "" {
		message = fmt.Sprintf("assertion %q does not hold", a.Expr)
	}

	return entities.TestProcedure{
		Name: fmt.Sprintf("assert(%s)", a.Expr),
		Fn:   assertProcedure(program, message),
	}, nil
}

func assertProcedure(program *vm.Program, message string) entities.ProcedureFunc {
	return func(target entities.ValidationTarget, check entities.Check) bool {
		doc, err := target.Descriptor()
		if err != nil {
			target.AddError(fmt.Sprintf("descriptor %q is not in the correct format", target.RelDescriptorPath()), check)
			return false
		}

		out, err := expr.Run(program, map[string]any{"doc": doc})
		if err != nil {
			target.AddError(fmt.Sprintf("evaluating assertion: %v", err), check)
			return false
		}
		if passed, ok := out.(bool); !ok || !passed {
			target.AddError(message, check)
			return false
		}
		return true
	}
}
