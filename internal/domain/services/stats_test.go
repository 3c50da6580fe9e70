package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/domain/values"
)

func noopProcedure(_ entities.ValidationTarget, _ entities.Check) bool { return true }

func statsProfile(t *testing.T) *entities.Profile {
	t.Helper()
	profile := &entities.Profile{Identifier: "base-1.0", Name: "Base"}

	required := &entities.Requirement{Identifier: "descriptor", Order: 1, Name: "Descriptor", Level: values.MustGetLevel("MUST")}
	require.NoError(t, required.AddCheck(entities.NewNativeCheck("descriptor-exists", "Descriptor exists", "", values.MustGetLevel("MUST"),
		[]entities.TestProcedure{{Name: "exists", Fn: noopProcedure}})))
	require.NoError(t, required.AddCheck(entities.NewNativeCheck("descriptor-name", "Descriptor name", "", values.MustGetLevel("SHOULD"),
		[]entities.TestProcedure{{Name: "name", Fn: noopProcedure}})))

	recommended := &entities.Requirement{Identifier: "authorship", Order: 2, Name: "Authorship", Level: values.MustGetLevel("SHOULD")}
	require.NoError(t, recommended.AddCheck(entities.NewNativeCheck("has-author", "Has author", "", values.MustGetLevel("SHOULD"),
		[]entities.TestProcedure{{Name: "author", Fn: noopProcedure}})))

	hidden := &entities.Requirement{Identifier: "internal", Order: 3, Name: "Internal", Level: values.MustGetLevel("MUST"), Hidden: true}
	require.NoError(t, hidden.AddCheck(entities.NewNativeCheck("internal-check", "Internal", "", values.MustGetLevel("MUST"),
		[]entities.TestProcedure{{Name: "internal", Fn: noopProcedure}})))

	require.NoError(t, profile.AddRequirement(required))
	require.NoError(t, profile.AddRequirement(recommended))
	require.NoError(t, profile.AddRequirement(hidden))
	return profile
}

func Test_ComputeStats(t *testing.T) {
	profiles := []*entities.Profile{statsProfile(t)}

	t.Run("required threshold keeps only required work", func(t *testing.T) {
		stats := ComputeStats(profiles, values.SevRequired, false)
		assert.Equal(t, 1, stats.TotalRequirements)
		assert.Equal(t, 1, stats.TotalChecks)
		assert.Equal(t, 1, stats.RequirementsBySeverity[values.SevRequired])
		assert.Zero(t, stats.RequirementsBySeverity[values.SevRecommended])
	})

	t.Run("optional threshold counts everything visible", func(t *testing.T) {
		stats := ComputeStats(profiles, values.SevOptional, false)
		assert.Equal(t, 2, stats.TotalRequirements)
		assert.Equal(t, 3, stats.TotalChecks)
		assert.Equal(t, 2, stats.ChecksBySeverity[values.SevRecommended])
		assert.Equal(t, 1, stats.ChecksBySeverity[values.SevRequired])
	})

	t.Run("exact-only matches only the threshold severity", func(t *testing.T) {
		stats := ComputeStats(profiles, values.SevRecommended, true)
		assert.Equal(t, 1, stats.TotalRequirements)
		assert.Equal(t, 1, stats.TotalChecks)
	})

	t.Run("hidden requirements never counted", func(t *testing.T) {
		stats := ComputeStats(profiles, values.SevOptional, false)
		assert.Zero(t, stats.RequirementsBySeverity[values.SevUnknown])
		assert.Equal(t, 2, stats.TotalRequirements)
	})

	t.Run("requirement with no selected checks not counted", func(t *testing.T) {
		relaxed := &entities.Requirement{Identifier: "relaxed", Order: 1, Name: "Relaxed", Level: values.MustGetLevel("MUST")}
		require.NoError(t, relaxed.AddCheck(entities.NewNativeCheck("optional-only", "Optional only", "", values.MustGetLevel("MAY"),
			[]entities.TestProcedure{{Name: "noop", Fn: noopProcedure}})))
		profile := &entities.Profile{Identifier: "relaxed-1.0", Name: "Relaxed"}
		require.NoError(t, profile.AddRequirement(relaxed))

		stats := ComputeStats([]*entities.Profile{profile}, values.SevRequired, false)
		assert.Zero(t, stats.TotalRequirements, "the engine would skip it, so it never counts")
		assert.Zero(t, stats.TotalChecks)
	})
}
