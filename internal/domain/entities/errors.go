package entities

import (
	"fmt"
	"strings"
)

// ProfileNotFoundError indicates a profile identifier absent from the store.
type ProfileNotFoundError struct {
	Identifier string
	Path       string
}

func (e *ProfileNotFoundError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("profile not found: %s", e.Identifier)
	}
	return fmt.Sprintf("profile not found: %s (in %s)", e.Identifier, e.Path)
}

// CyclicInheritanceError indicates a cycle in the profile inheritance graph.
// Chain holds the walk from the first profile back to the repeated one.
type CyclicInheritanceError struct {
	Chain []string
}

func (e *CyclicInheritanceError) Error() string {
	return fmt.Sprintf("cyclic profile inheritance: %s", strings.Join(e.Chain, " -> "))
}

// TargetUnavailableError indicates the target reference cannot be read.
// It is fatal and surfaced before orchestration starts.
type TargetUnavailableError struct {
	Path string
	Err  error
}

func (e *TargetUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("target unavailable: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("target unavailable: %s", e.Path)
}

func (e *TargetUnavailableError) Unwrap() error {
	return e.Err
}
