// Package entities contains domain entities for the crateval model.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"fmt"
	"sort"

	"github.com/crateval-dev/crateval/internal/domain/values"
)

// Profile represents a named, inheritable bundle of requirements defining
// a conformance standard for a data package.
//
// Aggregate Boundary:
// - Profile is the root
// - Requirements are entities within the aggregate
// - Checks are owned by requirements
//
// Invariants Enforced:
// - Profile identifier and name are required
// - Requirement identifiers are unique within a profile
// - Requirements must have at least one check
//
// Profiles are built once at load time and treated as immutable for the
// process lifetime; concurrent reads are safe.
type Profile struct {
	Identifier  string
	Name        string
	Description string
	Version     string

	// Extends lists ancestor profile identifiers in declared order.
	// The inheritance graph over identifiers must be acyclic; resolution
	// is the registry's job, the entity only records the declaration.
	Extends []string

	// TargetTypes are descriptor @type values this profile applies to,
	// used for profile auto-detection. Empty means no auto-detection.
	TargetTypes []string

	requirements []*Requirement
}

// Requirement represents a single conformance rule with a severity,
// composed of one or more checks. Requirements are entities within the
// Profile aggregate, identified by their Identifier.
type Requirement struct {
	Identifier  string
	Order       int
	Name        string
	Description string
	Level       values.Level

	// Hidden suppresses the requirement from progress counters and stats.
	// Hidden requirements still execute and still affect the verdict.
	Hidden bool

	profile *Profile
	checks  []Check
}

// ===== PROFILE AGGREGATE ROOT METHODS =====

// AddRequirement adds a requirement to the profile with validation.
// This enforces aggregate invariants.
func (p *Profile) AddRequirement(req *Requirement) error {
	if req.Identifier == "" {
		return fmt.Errorf("profile %s: requirement identifier cannot be empty", p.Identifier)
	}
	if req.Level.IsZero() {
		return fmt.Errorf("requirement %s: conformance level is required", req.Identifier)
	}
	if len(req.checks) == 0 {
		return fmt.Errorf("requirement %s: must have at least one check", req.Identifier)
	}
	for _, existing := range p.requirements {
		if existing.Identifier == req.Identifier {
			return fmt.Errorf("duplicate requirement identifier: %s", req.Identifier)
		}
	}

	req.profile = p
	p.requirements = append(p.requirements, req)
	return nil
}

// Requirements returns the profile's requirements in ascending declared
// order number. This is the execution order within the profile.
func (p *Profile) Requirements() []*Requirement {
	out := make([]*Requirement, len(p.requirements))
	copy(out, p.requirements)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// GetRequirement retrieves a requirement by identifier.
func (p *Profile) GetRequirement(identifier string) *Requirement {
	for _, req := range p.requirements {
		if req.Identifier == identifier {
			return req
		}
	}
	return nil
}

// RequirementCount returns the total number of requirements.
func (p *Profile) RequirementCount() int {
	return len(p.requirements)
}

// Validate validates the profile configuration.
func (p *Profile) Validate() error {
	if p.Identifier == "" {
		return fmt.Errorf("profile identifier cannot be empty")
	}
	if p.Name == "" {
		return fmt.Errorf("profile %s: name cannot be empty", p.Identifier)
	}
	for _, ancestor := range p.Extends {
		if ancestor == p.Identifier {
			return &CyclicInheritanceError{Chain: []string{p.Identifier, ancestor}}
		}
	}
	return nil
}

// ===== REQUIREMENT ENTITY METHODS =====

// Profile returns the owning profile (back-reference, not ownership).
func (r *Requirement) Profile() *Profile {
	return r.profile
}

// Severity returns the severity the requirement's level maps to.
func (r *Requirement) Severity() values.Severity {
	return r.Level.Severity()
}

// AddCheck appends a check to the requirement and binds its back-reference.
func (r *Requirement) AddCheck(c Check) error {
	if c.Identifier() == "" {
		return fmt.Errorf("requirement %s: check identifier cannot be empty", r.Identifier)
	}
	for _, existing := range r.checks {
		if existing.Identifier() == c.Identifier() {
			return fmt.Errorf("requirement %s: duplicate check identifier: %s", r.Identifier, c.Identifier())
		}
	}
	c.attachTo(r)
	r.checks = append(r.checks, c)
	return nil
}

// Checks returns the requirement's checks in declared order.
func (r *Requirement) Checks() []Check {
	out := make([]Check, len(r.checks))
	copy(out, r.checks)
	return out
}

// ChecksAtSeverity filters the requirement's checks to those whose severity
// satisfies the threshold predicate, preserving declaration order.
func (r *Requirement) ChecksAtSeverity(threshold values.Severity, exactOnly bool) []Check {
	var out []Check
	for _, c := range r.checks {
		if c.Severity().Satisfies(threshold, exactOnly) {
			out = append(out, c)
		}
	}
	return out
}

// CheckCount returns the number of checks in this requirement.
func (r *Requirement) CheckCount() int {
	return len(r.checks)
}
