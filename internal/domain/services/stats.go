package services

import (
	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/domain/values"
)

// ProfileStats summarizes how much work a validation run will perform
// at a given threshold. Hidden requirements never appear in the
// counts, even though the engine still executes them.
type ProfileStats struct {
	RequirementsBySeverity map[values.Severity]int
	ChecksBySeverity       map[values.Severity]int
	TotalRequirements      int
	TotalChecks            int
}

// ComputeStats counts the visible requirements and checks across the
// given profile sequence that satisfy the threshold. The same
// predicate drives check selection during execution, so the totals
// match what the engine actually runs for visible requirements.
func ComputeStats(profiles []*entities.Profile, threshold values.Severity, exactOnly bool) ProfileStats {
	stats := ProfileStats{
		RequirementsBySeverity: make(map[values.Severity]int),
		ChecksBySeverity:       make(map[values.Severity]int),
	}

	for _, profile := range profiles {
		for _, req := range profile.Requirements() {
			if req.Hidden {
				continue
			}
			if !req.Severity().Satisfies(threshold, exactOnly) {
				continue
			}
			checks := req.ChecksAtSeverity(threshold, exactOnly)
			if len(checks) == 0 {
				// The engine skips requirements with no selected checks,
				// so they never count.
				continue
			}
			stats.RequirementsBySeverity[req.Severity()]++
			stats.TotalRequirements++

			for _, check := range checks {
				stats.ChecksBySeverity[check.Severity()]++
				stats.TotalChecks++
			}
		}
	}
	return stats
}
