package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crateval-dev/crateval/internal/domain/values"
)

func Test_NativeCheck_Accessors(t *testing.T) {
	procs := []TestProcedure{passingProcedure("first"), passingProcedure("second")}
	check := NewNativeCheck("desc-format", "Descriptor format", "The descriptor MUST be valid JSON",
		values.MustGetLevel("MUST"), procs)

	assert.Equal(t, "desc-format", check.Identifier())
	assert.Equal(t, "Descriptor format", check.Name())
	assert.True(t, check.Severity().Equals(values.SevRequired))
	assert.Nil(t, check.Requirement())

	got := check.Procedures()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
}

func Test_NativeCheck_ProceduresCopy(t *testing.T) {
	check := NewNativeCheck("c", "c", "", values.MustGetLevel("MAY"),
		[]TestProcedure{passingProcedure("only")})

	check.Procedures()[0] = TestProcedure{Name: "mutated"}
	assert.Equal(t, "only", check.Procedures()[0].Name)
}

func Test_ShapeCheck_Accessors(t *testing.T) {
	check := NewShapeCheck("root-entity", "Root entity shape", "",
		values.MustGetLevel("SHOULD"), "shapes/root-entity.ttl")

	assert.Equal(t, "root-entity", check.Identifier())
	assert.Equal(t, "shapes/root-entity.ttl", check.ShapePath())
	assert.True(t, check.Severity().Equals(values.SevRecommended))
}
