package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crateval-dev/crateval/internal/domain/entities"
)

func minimalProfileYAML(identifier string) string {
	return fmt.Sprintf(`
profile:
  identifier: %s
  name: Profile %s
requirements:
  - identifier: r1
    name: R1
    level: MUST
    checks:
      - identifier: c1
        name: C1
        procedures: [descriptor_exists]
`, identifier, identifier)
}

func writeProfileDir(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func Test_Store_ListProfiles(t *testing.T) {
	store := NewStore(newTestLoader())

	t.Run("stable order by file name", func(t *testing.T) {
		dir := writeProfileDir(t, map[string]string{
			"b-workflow.yaml": minimalProfileYAML("workflow-1.0"),
			"a-base.yaml":     minimalProfileYAML("base-1.0"),
			"notes.txt":       "ignored",
		})

		profiles, err := store.ListProfiles(context.Background(), dir)
		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, "base-1.0", profiles[0].Identifier)
		assert.Equal(t, "workflow-1.0", profiles[1].Identifier)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := store.ListProfiles(context.Background(), t.TempDir())
		assert.ErrorContains(t, err, "no profile documents found")
	})

	t.Run("broken document fails the listing", func(t *testing.T) {
		dir := writeProfileDir(t, map[string]string{
			"good.yaml": minimalProfileYAML("good-1.0"),
			"bad.yaml":  "profile: [unbalanced",
		})
		_, err := store.ListProfiles(context.Background(), dir)
		assert.Error(t, err)
	})

	t.Run("duplicate identifier rejected", func(t *testing.T) {
		dir := writeProfileDir(t, map[string]string{
			"one.yaml": minimalProfileYAML("dup-1.0"),
			"two.yml":  minimalProfileYAML("dup-1.0"),
		})
		_, err := store.ListProfiles(context.Background(), dir)
		assert.ErrorContains(t, err, `profile "dup-1.0" defined in both`)
	})
}

func Test_Store_GetProfile(t *testing.T) {
	store := NewStore(newTestLoader())
	dir := writeProfileDir(t, map[string]string{
		"base.yaml": minimalProfileYAML("base-1.0"),
	})

	t.Run("found", func(t *testing.T) {
		profile, err := store.GetProfile(context.Background(), dir, "base-1.0")
		require.NoError(t, err)
		assert.Equal(t, "base-1.0", profile.Identifier)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := store.GetProfile(context.Background(), dir, "missing-1.0")
		var notFound *entities.ProfileNotFoundError
		require.Error(t, err)
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "missing-1.0", notFound.Identifier)
	})
}
