package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crateval-dev/crateval/internal/domain/validation"
	"github.com/crateval-dev/crateval/internal/domain/values"
)

func reportFixture() *validation.Report {
	return &validation.Report{
		RunID:     values.NewRunID(),
		Target:    "/data/crate",
		Profile:   "base-1.0",
		Threshold: values.SevRequired,
		Passed:    false,
		StartTime: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Profiles: []validation.ProfileReport{
			{Identifier: "base-1.0", Passed: false},
		},
		Requirements: []validation.RequirementReport{
			{Identifier: "descriptor-format", Profile: "base-1.0", Name: "Descriptor format", Severity: values.SevRequired, Passed: false},
			{Identifier: "descriptor-metadata", Profile: "base-1.0", Name: "Descriptor metadata", Severity: values.SevRecommended, Passed: true},
		},
		Issues: []validation.IssueReport{
			{
				Message:     "descriptor \"crate-metadata.json\" is not present",
				Severity:    values.SevRequired,
				ResultPath:  "crate-metadata.json",
				Check:       "descriptor-exists",
				Requirement: "descriptor-format",
			},
		},
	}
}

func Test_NewFormatter(t *testing.T) {
	var buf bytes.Buffer

	for _, format := range SupportedFormats() {
		t.Run(format, func(t *testing.T) {
			formatter, err := NewFormatter(format, &buf, Options{})
			require.NoError(t, err)
			assert.NotNil(t, formatter)
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewFormatter("xml", &buf, Options{})
		assert.ErrorContains(t, err, "unknown format: xml")
	})
}

func Test_JSONFormatter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, true).Format(reportFixture()))

	parsed, err := validation.ParseReport(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"descriptor-format"}, parsed.FailedRequirementIDs())
	assert.False(t, parsed.Passed)
}

func Test_YAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).Format(reportFixture()))

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "base-1.0", raw["profile"])
	assert.Equal(t, false, raw["passed"])
}

func Test_TableFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewTableFormatter(&buf)
	formatter.EnableColor = false
	require.NoError(t, formatter.Format(reportFixture()))

	out := buf.String()
	assert.Contains(t, out, "Profile:   base-1.0")
	assert.Contains(t, out, "[FAIL]")
	assert.Contains(t, out, "[PASS]")
	assert.Contains(t, out, "is not present")
	assert.Contains(t, out, "INVALID")
	assert.NotContains(t, out, "\033[", "colors disabled")
}

func Test_TableFormatter_PassingReport(t *testing.T) {
	report := reportFixture()
	report.Passed = true
	report.Issues = nil
	report.Requirements[0].Passed = true

	var buf bytes.Buffer
	formatter := NewTableFormatter(&buf)
	formatter.EnableColor = false
	require.NoError(t, formatter.Format(report))
	assert.Contains(t, buf.String(), "VALID")
	assert.NotContains(t, buf.String(), "INVALID")
}

func Test_SARIFFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSARIFFormatter(&buf).Format(reportFixture()))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2.1.0", doc["version"])

	runs := doc["runs"].([]any)
	require.Len(t, runs, 1)
	run := runs[0].(map[string]any)

	driver := run["tool"].(map[string]any)["driver"].(map[string]any)
	assert.Equal(t, "crateval", driver["name"])
	rules := driver["rules"].([]any)
	require.Len(t, rules, 2)
	assert.Equal(t, "descriptor-format", rules[0].(map[string]any)["id"])

	results := run["results"].([]any)
	require.Len(t, results, 2, "one pass verdict and one issue")

	var kinds []string
	for _, raw := range results {
		result := raw.(map[string]any)
		if kind, ok := result["kind"].(string); ok {
			kinds = append(kinds, kind)
		}
	}
	assert.Contains(t, strings.Join(kinds, ","), "fail")
}
