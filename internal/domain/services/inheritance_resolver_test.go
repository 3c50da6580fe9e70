package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crateval-dev/crateval/internal/domain/entities"
)

func profileWith(id string, extends ...string) *entities.Profile {
	return &entities.Profile{Identifier: id, Name: id, Extends: extends}
}

func identifiers(profiles []*entities.Profile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.Identifier)
	}
	return out
}

func Test_InheritanceResolver_Resolve(t *testing.T) {
	base := profileWith("base-1.0")
	workflow := profileWith("workflow-1.0", "base-1.0")
	process := profileWith("process-1.0", "base-1.0")
	combined := profileWith("combined-1.0", "workflow-1.0", "process-1.0")
	resolver := NewInheritanceResolver([]*entities.Profile{base, workflow, process, combined})

	t.Run("no ancestors", func(t *testing.T) {
		sequence, err := resolver.Resolve(base)
		require.NoError(t, err)
		assert.Equal(t, []string{"base-1.0"}, identifiers(sequence))
	})

	t.Run("self first then declared order depth-first", func(t *testing.T) {
		sequence, err := resolver.Resolve(combined)
		require.NoError(t, err)
		assert.Equal(t, []string{"combined-1.0", "workflow-1.0", "base-1.0", "process-1.0"}, identifiers(sequence))
	})

	t.Run("shared ancestor kept at first occurrence", func(t *testing.T) {
		sequence, err := resolver.Resolve(workflow)
		require.NoError(t, err)
		assert.Equal(t, []string{"workflow-1.0", "base-1.0"}, identifiers(sequence))
	})
}

func Test_InheritanceResolver_Cycle(t *testing.T) {
	a := profileWith("a", "b")
	b := profileWith("b", "a")
	resolver := NewInheritanceResolver([]*entities.Profile{a, b})

	_, err := resolver.Resolve(a)
	var cyclic *entities.CyclicInheritanceError
	require.Error(t, err)
	require.True(t, errors.As(err, &cyclic))
	assert.Equal(t, []string{"a", "b", "a"}, cyclic.Chain)
}

func Test_InheritanceResolver_MissingAncestor(t *testing.T) {
	orphan := profileWith("orphan", "no-such-profile")
	resolver := NewInheritanceResolver([]*entities.Profile{orphan})

	_, err := resolver.Resolve(orphan)
	var notFound *entities.ProfileNotFoundError
	require.Error(t, err)
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "no-such-profile", notFound.Identifier)
}

func Test_InheritanceResolver_ResolveSequence_Idempotent(t *testing.T) {
	base := profileWith("base-1.0")
	workflow := profileWith("workflow-1.0", "base-1.0")
	resolver := NewInheritanceResolver([]*entities.Profile{base, workflow})

	first, err := resolver.ResolveSequence([]*entities.Profile{workflow})
	require.NoError(t, err)
	assert.Equal(t, []string{"workflow-1.0", "base-1.0"}, identifiers(first))

	second, err := resolver.ResolveSequence(first)
	require.NoError(t, err)
	assert.Equal(t, identifiers(first), identifiers(second))
}
