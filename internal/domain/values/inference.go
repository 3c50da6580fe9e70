package values

import (
	"fmt"
	"strings"
)

// InferenceMode selects the entailment regime the external reasoner applies
// before evaluating shape checks.
type InferenceMode string

const (
	// InferenceNone disables inference (the default).
	InferenceNone InferenceMode = "none"
	// InferenceRDFS applies RDFS entailment.
	InferenceRDFS InferenceMode = "rdfs"
	// InferenceOWL applies OWL-RL entailment.
	InferenceOWL InferenceMode = "owl"
	// InferenceBoth applies RDFS then OWL-RL entailment.
	InferenceBoth InferenceMode = "both"
)

// InvalidConfigurationError indicates a run setting outside its allowed set.
// It is fatal and detected before any traversal begins.
type InvalidConfigurationError struct {
	Setting string
	Value   string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%q", e.Setting, e.Value)
}

// ParseInferenceMode validates an inference mode name.
// Empty input means no inference. Fails with *InvalidConfigurationError.
func ParseInferenceMode(s string) (InferenceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return InferenceNone, nil
	case "rdfs":
		return InferenceRDFS, nil
	case "owl":
		return InferenceOWL, nil
	case "both":
		return InferenceBoth, nil
	default:
		return "", &InvalidConfigurationError{Setting: "inference", Value: s}
	}
}
