// Package values contains domain value objects that encapsulate
// primitive types with validation and such.
package values

import (
	"fmt"
	"strings"
)

// Severity represents the importance of a requirement or check.
// Enforces valid severity values and provides a total order.
type Severity struct {
	value severityRank
}

// severityRank is the internal representation
type severityRank int

const (
	severityUnknown     severityRank = 0
	severityOptional    severityRank = 1
	severityRecommended severityRank = 2
	severityRequired    severityRank = 3
)

// Predefined severity values, ordered OPTIONAL < RECOMMENDED < REQUIRED
var (
	SevUnknown     = Severity{severityUnknown}
	SevOptional    = Severity{severityOptional}
	SevRecommended = Severity{severityRecommended}
	SevRequired    = Severity{severityRequired}
)

// Severities lists the valid severity values in ascending order.
func Severities() []Severity {
	return []Severity{SevOptional, SevRecommended, SevRequired}
}

// ParseSeverity creates a Severity from string. Only the three named
// severities parse; the unknown zero value never comes from input.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OPTIONAL":
		return SevOptional, nil
	case "RECOMMENDED":
		return SevRecommended, nil
	case "REQUIRED":
		return SevRequired, nil
	default:
		return Severity{}, fmt.Errorf("invalid severity: %q", s)
	}
}

// MustParseSeverity creates a Severity or panics
func MustParseSeverity(s string) Severity {
	sev, err := ParseSeverity(s)
	if err != nil {
		panic(err)
	}
	return sev
}

// String returns the string representation
func (s Severity) String() string {
	switch s.value {
	case severityOptional:
		return "OPTIONAL"
	case severityRecommended:
		return "RECOMMENDED"
	case severityRequired:
		return "REQUIRED"
	default:
		return ""
	}
}

// Rank returns the numeric severity rank (for ordering)
func (s Severity) Rank() int {
	return int(s.value)
}

// IsHigherThan returns true if this severity is higher than the other
func (s Severity) IsHigherThan(other Severity) bool {
	return s.value > other.value
}

// IsHigherOrEqual returns true if this severity is higher or equal to the other
func (s Severity) IsHigherOrEqual(other Severity) bool {
	return s.value >= other.value
}

// Equals checks if two severities are equal
func (s Severity) Equals(other Severity) bool {
	return s.value == other.value
}

// Satisfies reports whether this severity meets the given threshold.
// With exactOnly the severity must match the threshold exactly, otherwise
// any severity at or above the threshold satisfies it. This predicate is
// shared by profile statistics, check filtering and the orchestrator so
// that counted and executed sets always agree.
func (s Severity) Satisfies(threshold Severity, exactOnly bool) bool {
	if exactOnly {
		return s.Equals(threshold)
	}
	return s.IsHigherOrEqual(threshold)
}

// MarshalJSON implements json.Marshaler
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Severity) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) < 2 {
		return fmt.Errorf("invalid severity JSON")
	}
	str = str[1 : len(str)-1]

	sev, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (s Severity) MarshalYAML() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *Severity) UnmarshalYAML(data []byte) error {
	sev, err := ParseSeverity(strings.Trim(string(data), `"'`))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}
