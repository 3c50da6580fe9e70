// Package services holds stateless domain services operating on
// profiles: inheritance resolution and severity statistics.
package services

import (
	"github.com/crateval-dev/crateval/internal/domain/entities"
)

// InheritanceResolver expands a profile into its full inheritance
// sequence. Resolution is depth-first over the declared ancestors, the
// profile itself first, with duplicates removed keeping the first
// occurrence.
type InheritanceResolver struct {
	index map[string]*entities.Profile
}

// NewInheritanceResolver builds a resolver over the given profile set.
// Later profiles with a duplicate identifier are ignored.
func NewInheritanceResolver(profiles []*entities.Profile) *InheritanceResolver {
	index := make(map[string]*entities.Profile, len(profiles))
	for _, p := range profiles {
		if _, exists := index[p.Identifier]; !exists {
			index[p.Identifier] = p
		}
	}
	return &InheritanceResolver{index: index}
}

// Resolve returns the inheritance sequence for profile: itself first,
// then its ancestors in declared order, each expanded depth-first.
// A cycle anywhere in the walk fails with CyclicInheritanceError; an
// ancestor missing from the resolver's set fails with
// ProfileNotFoundError.
func (r *InheritanceResolver) Resolve(profile *entities.Profile) ([]*entities.Profile, error) {
	var (
		sequence []*entities.Profile
		seen     = make(map[string]bool)
		walk     []string
	)

	var visit func(p *entities.Profile) error
	visit = func(p *entities.Profile) error {
		for _, id := range walk {
			if id == p.Identifier {
				return &entities.CyclicInheritanceError{Chain: append(append([]string{}, walk...), p.Identifier)}
			}
		}
		if seen[p.Identifier] {
			return nil
		}
		seen[p.Identifier] = true
		sequence = append(sequence, p)

		walk = append(walk, p.Identifier)
		defer func() { walk = walk[:len(walk)-1] }()

		for _, ancestorID := range p.Extends {
			ancestor, ok := r.index[ancestorID]
			if !ok {
				return &entities.ProfileNotFoundError{Identifier: ancestorID}
			}
			if err := visit(ancestor); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(profile); err != nil {
		return nil, err
	}
	return sequence, nil
}

// ResolveSequence resolves every profile in order and merges the
// sequences, keeping the first occurrence of each identifier. Applying
// it to an already-resolved sequence returns the sequence unchanged.
func (r *InheritanceResolver) ResolveSequence(profiles []*entities.Profile) ([]*entities.Profile, error) {
	var (
		merged []*entities.Profile
		seen   = make(map[string]bool)
	)
	for _, p := range profiles {
		sequence, err := r.Resolve(p)
		if err != nil {
			return nil, err
		}
		for _, resolved := range sequence {
			if !seen[resolved.Identifier] {
				seen[resolved.Identifier] = true
				merged = append(merged, resolved)
			}
		}
	}
	return merged, nil
}
