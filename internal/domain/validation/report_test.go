package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/domain/values"
)

func buildReportFixture(t *testing.T) *Result {
	t.Helper()

	profile := &entities.Profile{Identifier: "base-1.0", Name: "Base"}
	r1 := &entities.Requirement{Identifier: "descriptor", Order: 1, Name: "Descriptor", Level: values.MustGetLevel("MUST")}
	r2 := &entities.Requirement{Identifier: "authorship", Order: 2, Name: "Authorship", Level: values.MustGetLevel("SHOULD")}
	c1 := newTestCheck(t, r1, "descriptor-exists", "MUST")
	c2 := newTestCheck(t, r2, "has-author", "SHOULD")
	require.NoError(t, profile.AddRequirement(r1))
	require.NoError(t, profile.AddRequirement(r2))

	result := newTestResult()
	result.AddIssue(Issue{
		Severity:   values.SevRequired,
		Message:    "file descriptor is not present",
		ResultPath: "crate-metadata.json",
		Check:      c1,
	})
	result.AddCheckOutcome(c1, false)
	result.AddRequirementOutcome(r1, false)
	result.AddCheckOutcome(c2, true)
	result.AddRequirementOutcome(r2, true)
	result.Finalize()
	return result
}

func Test_NewReport(t *testing.T) {
	result := buildReportFixture(t)
	report := NewReport(result)

	assert.False(t, report.Passed)
	assert.Equal(t, "base-1.0", report.Profile)
	require.Len(t, report.Profiles, 1)
	assert.Equal(t, "base-1.0", report.Profiles[0].Identifier)
	assert.False(t, report.Profiles[0].Passed)

	require.Len(t, report.Requirements, 2)
	assert.Equal(t, "descriptor", report.Requirements[0].Identifier)
	assert.False(t, report.Requirements[0].Passed)
	assert.True(t, report.Requirements[0].Severity.Equals(values.SevRequired))
	assert.True(t, report.Requirements[1].Passed)

	require.Len(t, report.Issues, 1)
	assert.Equal(t, "descriptor-exists", report.Issues[0].Check)
}

func Test_Report_RoundTrip(t *testing.T) {
	original := NewReport(buildReportFixture(t))

	data, err := original.Bytes()
	require.NoError(t, err)

	parsed, err := ParseReport(data)
	require.NoError(t, err)

	assert.Equal(t, original.FailedRequirementIDs(), parsed.FailedRequirementIDs())
	assert.Equal(t, original.IssueMessages(), parsed.IssueMessages())
	assert.Equal(t, original.Passed, parsed.Passed)
	assert.True(t, original.RunID.Equals(parsed.RunID))
}

func Test_Report_StableFieldNames(t *testing.T) {
	data, err := NewReport(buildReportFixture(t)).Bytes()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, field := range []string{"run_id", "target", "profile", "threshold", "passed", "profiles", "requirements", "issues"} {
		assert.Contains(t, raw, field)
	}
}

func Test_ParseReport_Invalid(t *testing.T) {
	_, err := ParseReport([]byte("not json"))
	assert.Error(t, err)
}
