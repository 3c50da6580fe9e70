package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/crateval-dev/crateval/internal/domain/entities"
)

// Store discovers and loads the profiles under a directory. Discovery
// order is stable: files load concurrently but profiles come back
// sorted by file name.
type Store struct {
	loader *Loader
}

// NewStore creates a store loading through the given loader.
func NewStore(loader *Loader) *Store {
	return &Store{loader: loader}
}

// ListProfiles loads every profile document under path. Any document
// failing to load fails the whole listing; a broken profile set is not
// something to validate against.
func (s *Store) ListProfiles(ctx context.Context, path string) ([]*entities.Profile, error) {
	files, err := discoverProfileFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no profile documents found under %s", path)
	}

	profiles := make([]*entities.Profile, len(files))
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(8)
	for i, file := range files {
		group.Go(func() error {
			profile, err := s.loader.LoadFile(file)
			if err != nil {
				return err
			}
			profiles[i] = profile
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(profiles))
	for i, profile := range profiles {
		if prev, dup := seen[profile.Identifier]; dup {
			return nil, fmt.Errorf("profile %q defined in both %s and %s", profile.Identifier, prev, files[i])
		}
		seen[profile.Identifier] = files[i]
	}
	return profiles, nil
}

// GetProfile loads the profile with the given identifier. Fails with
// *entities.ProfileNotFoundError when no document declares it.
func (s *Store) GetProfile(ctx context.Context, path, identifier string) (*entities.Profile, error) {
	profiles, err := s.ListProfiles(ctx, path)
	if err != nil {
		return nil, err
	}
	for _, profile := range profiles {
		if profile.Identifier == identifier {
			return profile, nil
		}
	}
	return nil, &entities.ProfileNotFoundError{Identifier: identifier, Path: path}
}

// discoverProfileFiles globs the YAML documents under path, sorted by
// file name.
func discoverProfileFiles(path string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			return nil, fmt.Errorf("discovering profiles under %s: %w", path, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}
