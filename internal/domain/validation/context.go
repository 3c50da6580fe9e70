// Package validation provides the per-run domain model: the mutable
// validation context, the aggregated result, run events and the report
// document. Everything here is created per run and discarded at run end;
// profile definitions stay immutable and shared.
package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/domain/values"
)

// DefaultDescriptorName is the descriptor document looked up inside the
// target package when a profile does not override it.
const DefaultDescriptorName = "crate-metadata.json"

// Settings is the immutable run configuration.
type Settings struct {
	ProfilesPath      string
	ProfileIdentifier string
	Threshold         values.Severity
	ExactSeverityOnly bool
	AbortOnFirst      bool
	InheritProfiles   bool
	Inference         values.InferenceMode
	DescriptorName    string
}

// DefaultSettings returns the defaults matching the CLI's defaults:
// REQUIRED threshold, fail-fast on, inheritance on, no inference.
func DefaultSettings() Settings {
	return Settings{
		Threshold:       values.SevRequired,
		AbortOnFirst:    true,
		InheritProfiles: true,
		Inference:       values.InferenceNone,
		DescriptorName:  DefaultDescriptorName,
	}
}

// Context owns one run's mutable state: the target reference, the lazily
// parsed descriptor document and the result being built. It implements
// entities.ValidationTarget so test procedures never touch run state
// through any other door.
//
// The descriptor cache is keyed by the target path and invalidated when
// the path changes; checks themselves stay stateless.
type Context struct {
	runID    values.RunID
	settings Settings

	targetPath string

	descriptor    map[string]any
	descriptorFor string

	result *Result
}

// NewContext creates a run context for the given target.
func NewContext(targetPath string, settings Settings) *Context {
	if settings.DescriptorName == "" {
		settings.DescriptorName = DefaultDescriptorName
	}
	runID := values.NewRunID()
	return &Context{
		runID:      runID,
		settings:   settings,
		targetPath: targetPath,
		result:     NewResult(runID, targetPath, settings.ProfileIdentifier, settings.Threshold),
	}
}

// RunID returns the run's unique identifier.
func (c *Context) RunID() values.RunID {
	return c.runID
}

// Settings returns the run configuration.
func (c *Context) Settings() Settings {
	return c.settings
}

// Result returns the result this run mutates in place.
func (c *Context) Result() *Result {
	return c.result
}

// TargetPath returns the data package root path.
func (c *Context) TargetPath() string {
	return c.targetPath
}

// SetTargetPath changes the target reference and invalidates the
// descriptor cache.
func (c *Context) SetTargetPath(path string) {
	c.targetPath = path
	c.descriptor = nil
	c.descriptorFor = ""
}

// EnsureTargetAvailable verifies the target reference can be read.
// Fails with *entities.TargetUnavailableError; callers surface this
// before orchestration starts.
func (c *Context) EnsureTargetAvailable() error {
	info, err := os.Stat(c.targetPath)
	if err != nil {
		return &entities.TargetUnavailableError{Path: c.targetPath, Err: err}
	}
	if !info.IsDir() {
		return &entities.TargetUnavailableError{
			Path: c.targetPath,
			Err:  fmt.Errorf("not a directory"),
		}
	}
	return nil
}

// DescriptorPath returns the absolute path of the descriptor document.
func (c *Context) DescriptorPath() string {
	return filepath.Join(c.targetPath, c.settings.DescriptorName)
}

// RelDescriptorPath returns the descriptor path relative to the target.
func (c *Context) RelDescriptorPath() string {
	return c.settings.DescriptorName
}

// Descriptor returns the parsed descriptor document, loading and caching
// it on first use. Parse and read failures are returned, not cached, so
// a check may observe a descriptor that appears mid-run.
func (c *Context) Descriptor() (map[string]any, error) {
	if c.descriptor != nil && c.descriptorFor == c.targetPath {
		return c.descriptor, nil
	}

	data, err := os.ReadFile(c.DescriptorPath())
	if err != nil {
		return nil, fmt.Errorf("reading descriptor %s: %w", c.RelDescriptorPath(), err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", c.RelDescriptorPath(), err)
	}

	c.descriptor = doc
	c.descriptorFor = c.targetPath
	return doc, nil
}

// AddError records an issue at the check's severity.
func (c *Context) AddError(message string, check entities.Check) {
	c.result.AddError(message, check)
}

// AddIssue records an issue with optional location metadata.
func (c *Context) AddIssue(message string, check entities.Check, focusNode, resultPath, value string) {
	c.result.AddIssue(Issue{
		Severity:   check.Severity(),
		Message:    message,
		FocusNode:  focusNode,
		ResultPath: resultPath,
		Value:      value,
		Check:      check,
	})
}
