package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"

	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/infrastructure/procedures"
	"github.com/crateval-dev/crateval/internal/version"
)

// Loader turns profile YAML documents into domain profiles. Every
// document is schema-validated, gated on the engine version it
// declares, and has its procedure references resolved before the
// profile is returned.
type Loader struct {
	registry *procedures.Registry

	// EngineVersion is the version checked against minEngineVersion.
	// Non-semver values (dev builds) disable the gate.
	EngineVersion string
}

// NewLoader creates a loader resolving procedures from the registry.
func NewLoader(registry *procedures.Registry) *Loader {
	return &Loader{
		registry:      registry,
		EngineVersion: version.Get().Version,
	}
}

// LoadFile loads one profile document from disk.
func (l *Loader) LoadFile(path string) (*entities.Profile, error) {
	// os.OpenRoot keeps reads inside the profile directory.
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("opening profile directory: %w", err)
	}
	defer func() {
		_ = root.Close()
	}()

	data, err := root.ReadFile(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	profile, err := l.Load(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", filepath.Base(path), err)
	}
	return profile, nil
}

// Load parses, validates and materializes one profile document.
func (l *Loader) Load(data []byte) (*entities.Profile, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decoding profile YAML: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(jsonData, &decoded); err != nil {
		return nil, fmt.Errorf("decoding profile document: %w", err)
	}
	if err := validateDocument(decoded); err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding profile YAML: %w", err)
	}

	if err := l.checkEngineVersion(&doc); err != nil {
		return nil, err
	}
	return doc.toProfile(l.registry)
}

// checkEngineVersion enforces the document's minEngineVersion
// constraint. Dev builds without a parseable version skip the gate.
func (l *Loader) checkEngineVersion(doc *Document) error {
	required := doc.Profile.MinEngineVersion
	if required == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(required)
	if err != nil {
		return fmt.Errorf("profile %s: invalid minEngineVersion %q: %w", doc.Profile.Identifier, required, err)
	}

	engine, err := semver.NewVersion(l.EngineVersion)
	if err != nil {
		return nil
	}
	if !constraint.Check(engine) {
		return fmt.Errorf("profile %s requires engine version %s, running %s",
			doc.Profile.Identifier, required, l.EngineVersion)
	}
	return nil
}
