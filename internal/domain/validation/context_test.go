package validation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crateval-dev/crateval/internal/domain/entities"
)

func writeDescriptor(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultDescriptorName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_Context_Descriptor_LazyAndCached(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, `{"@context": "https://example.org/context", "@graph": []}`)

	ctx := NewContext(dir, DefaultSettings())

	doc, err := ctx.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/context", doc["@context"])

	// Cache survives descriptor removal because the target is unchanged.
	require.NoError(t, os.Remove(ctx.DescriptorPath()))
	cached, err := ctx.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, doc, cached)
}

func Test_Context_Descriptor_InvalidatedOnTargetChange(t *testing.T) {
	first := t.TempDir()
	writeDescriptor(t, first, `{"name": "first"}`)
	second := t.TempDir()
	writeDescriptor(t, second, `{"name": "second"}`)

	ctx := NewContext(first, DefaultSettings())

	doc, err := ctx.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, "first", doc["name"])

	ctx.SetTargetPath(second)
	doc, err = ctx.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, "second", doc["name"])
}

func Test_Context_Descriptor_Errors(t *testing.T) {
	t.Run("missing descriptor", func(t *testing.T) {
		ctx := NewContext(t.TempDir(), DefaultSettings())
		_, err := ctx.Descriptor()
		assert.Error(t, err)
	})

	t.Run("malformed descriptor not cached", func(t *testing.T) {
		dir := t.TempDir()
		writeDescriptor(t, dir, `{not json`)
		ctx := NewContext(dir, DefaultSettings())

		_, err := ctx.Descriptor()
		require.Error(t, err)

		writeDescriptor(t, dir, `{"fixed": true}`)
		doc, err := ctx.Descriptor()
		require.NoError(t, err)
		assert.Equal(t, true, doc["fixed"])
	})
}

func Test_Context_EnsureTargetAvailable(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		ctx := NewContext(t.TempDir(), DefaultSettings())
		assert.NoError(t, ctx.EnsureTargetAvailable())
	})

	t.Run("missing target", func(t *testing.T) {
		ctx := NewContext(filepath.Join(t.TempDir(), "nope"), DefaultSettings())

		err := ctx.EnsureTargetAvailable()
		var unavailable *entities.TargetUnavailableError
		require.Error(t, err)
		assert.True(t, errors.As(err, &unavailable))
	})

	t.Run("target is a file", func(t *testing.T) {
		dir := t.TempDir()
		path := writeDescriptor(t, dir, "{}")
		ctx := NewContext(path, DefaultSettings())

		var unavailable *entities.TargetUnavailableError
		assert.True(t, errors.As(ctx.EnsureTargetAvailable(), &unavailable))
	})
}

func Test_Context_DescriptorName_Override(t *testing.T) {
	settings := DefaultSettings()
	settings.DescriptorName = "ro-crate-metadata.json"

	ctx := NewContext("/data/crate", settings)
	assert.Equal(t, filepath.Join("/data/crate", "ro-crate-metadata.json"), ctx.DescriptorPath())
	assert.Equal(t, "ro-crate-metadata.json", ctx.RelDescriptorPath())
}
