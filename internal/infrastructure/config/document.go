// Package config loads profile documents from YAML and materializes
// them into domain profiles. Documents are schema-validated before
// decoding, procedure references are resolved against the registry at
// load time, and assertion expressions are compiled once here.
package config

import (
	"fmt"

	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/domain/values"
	"github.com/crateval-dev/crateval/internal/infrastructure/procedures"
)

// Document is the YAML shape of a profile file.
type Document struct {
	Profile      ProfileSection        `yaml:"profile"`
	Requirements []RequirementDocument `yaml:"requirements"`
}

// ProfileSection carries the profile metadata.
type ProfileSection struct {
	Identifier       string   `yaml:"identifier"`
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	Version          string   `yaml:"version"`
	Extends          []string `yaml:"extends"`
	TargetTypes      []string `yaml:"targetTypes"`
	MinEngineVersion string   `yaml:"minEngineVersion"`
}

// RequirementDocument is one requirement entry.
type RequirementDocument struct {
	Identifier  string          `yaml:"identifier"`
	Order       int             `yaml:"order"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Level       string          `yaml:"level"`
	Hidden      bool            `yaml:"hidden"`
	Checks      []CheckDocument `yaml:"checks"`
}

// CheckDocument is one check entry. Exactly one body kind is set:
// named procedures, declarative asserts, or a shape file reference.
type CheckDocument struct {
	Identifier  string              `yaml:"identifier"`
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Level       string              `yaml:"level"`
	Procedures  []string            `yaml:"procedures"`
	Asserts     []procedures.Assert `yaml:"asserts"`
	Shape       string              `yaml:"shape"`
}

// toProfile materializes the document into a domain profile, resolving
// procedure names and compiling assertions through the registry.
func (d *Document) toProfile(registry *procedures.Registry) (*entities.Profile, error) {
	profile := &entities.Profile{
		Identifier:  d.Profile.Identifier,
		Name:        d.Profile.Name,
		Description: d.Profile.Description,
		Version:     d.Profile.Version,
		Extends:     d.Profile.Extends,
		TargetTypes: d.Profile.TargetTypes,
	}

	for _, reqDoc := range d.Requirements {
		level, err := values.GetLevel(reqDoc.Level)
		if err != nil {
			return nil, fmt.Errorf("requirement %q: %w", reqDoc.Identifier, err)
		}

		req := &entities.Requirement{
			Identifier:  reqDoc.Identifier,
			Order:       reqDoc.Order,
			Name:        reqDoc.Name,
			Description: reqDoc.Description,
			Level:       level,
			Hidden:      reqDoc.Hidden,
		}

		for _, checkDoc := range reqDoc.Checks {
			check, err := checkDoc.toCheck(level, registry)
			if err != nil {
				return nil, fmt.Errorf("requirement %q: %w", reqDoc.Identifier, err)
			}
			if err := req.AddCheck(check); err != nil {
				return nil, fmt.Errorf("requirement %q: %w", reqDoc.Identifier, err)
			}
		}

		if err := profile.AddRequirement(req); err != nil {
			return nil, err
		}
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

func (c *CheckDocument) toCheck(requirementLevel values.Level, registry *procedures.Registry) (entities.Check, error) {
	level := requirementLevel
	if c.Level != "" {
		parsed, err := values.GetLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", c.Identifier, err)
		}
		level = parsed
	}

	bodies := 0
	if len(c.Procedures) > 0 {
		bodies++
	}
	if len(c.Asserts) > 0 {
		bodies++
	}
	if c.Shape != "" {
		bodies++
	}
	if bodies != 1 {
		return nil, fmt.Errorf("check %q must declare exactly one of procedures, asserts or shape", c.Identifier)
	}

	if c.Shape != "" {
		return entities.NewShapeCheck(c.Identifier, c.Name, c.Description, level, c.Shape), nil
	}

	var procs []entities.TestProcedure
	for _, name := range c.Procedures {
		proc, err := registry.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", c.Identifier, err)
		}
		procs = append(procs, proc)
	}
	for _, assert := range c.Asserts {
		proc, err := procedures.CompileAssert(assert)
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", c.Identifier, err)
		}
		procs = append(procs, proc)
	}
	return entities.NewNativeCheck(c.Identifier, c.Name, c.Description, level, procs), nil
}
