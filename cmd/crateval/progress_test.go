package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/domain/validation"
	"github.com/crateval-dev/crateval/internal/domain/values"
)

func Test_ProgressSubscriber(t *testing.T) {
	visible := &entities.Requirement{Identifier: "descriptor", Level: values.MustGetLevel("MUST")}
	hidden := &entities.Requirement{Identifier: "internal", Level: values.MustGetLevel("MUST"), Hidden: true}
	check := entities.NewNativeCheck("descriptor-exists", "Descriptor exists", "", values.MustGetLevel("MUST"), nil)
	hiddenCheck := entities.NewNativeCheck("internal-check", "Internal check", "", values.MustGetLevel("MUST"), nil)

	passed := true
	failed := false

	var buf bytes.Buffer
	sub := newProgressSubscriber(&buf, 2)
	sub.OnEvent(validation.Event{Type: validation.RequirementStart, Requirement: visible})
	sub.OnEvent(validation.Event{Type: validation.CheckEnd, Check: check, Passed: &failed})
	sub.OnEvent(validation.Event{Type: validation.RequirementStart, Requirement: hidden})
	sub.OnEvent(validation.Event{Type: validation.CheckEnd, Check: hiddenCheck, Passed: &passed})

	out := buf.String()
	assert.Contains(t, out, "[1/2] ✗ Descriptor exists")
	assert.NotContains(t, out, "Internal check", "hidden requirement checks stay out of the progress display")
}
