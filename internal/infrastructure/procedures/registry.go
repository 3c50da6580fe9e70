// Package procedures provides the executable bodies of native checks:
// a named registry of test procedures, the builtin descriptor
// procedures, and assertion procedures compiled from expressions.
package procedures

import (
	"fmt"
	"sort"

	"github.com/crateval-dev/crateval/internal/domain/entities"
)

// Registry maps procedure names to their implementations. Profile
// documents reference procedures by name; the loader resolves them
// here at load time so unknown names fail before any execution.
type Registry struct {
	procedures map[string]entities.ProcedureFunc
}

// NewRegistry returns a registry preloaded with the builtin
// descriptor procedures.
func NewRegistry() *Registry {
	r := &Registry{procedures: make(map[string]entities.ProcedureFunc)}
	for name, fn := range builtins() {
		r.procedures[name] = fn
	}
	return r
}

// Register adds a named procedure. Names are unique; re-registering
// an existing name fails.
func (r *Registry) Register(name string, fn entities.ProcedureFunc) error {
	if name == "" {
		return fmt.Errorf("procedure name is required")
	}
	if fn == nil {
		return fmt.Errorf("procedure %q has no implementation", name)
	}
	if _, exists := r.procedures[name]; exists {
		return fmt.Errorf("procedure %q is already registered", name)
	}
	r.procedures[name] = fn
	return nil
}

// Lookup resolves a procedure by name.
func (r *Registry) Lookup(name string) (entities.ProcedureFunc, bool) {
	fn, ok := r.procedures[name]
	return fn, ok
}

// Resolve returns the named procedure or an error naming it, for use
// at profile load time.
func (r *Registry) Resolve(name string) (entities.TestProcedure, error) {
	fn, ok := r.procedures[name]
	if !ok {
		return entities.TestProcedure{}, fmt.Errorf("unknown procedure %q", name)
	}
	return entities.TestProcedure{Name: name, Fn: fn}, nil
}

// Names lists the registered procedure names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.procedures))
	for name := range r.procedures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
