package values

import (
	"fmt"
	"strings"
)

// Level binds an RFC 2119 conformance keyword to a Severity.
// Levels are what profile authors write (MUST, SHOULD, MAY, ...);
// severities are what the engine filters and orders by.
type Level struct {
	name     string
	severity Severity
}

// Name returns the conformance keyword (always uppercase).
func (l Level) Name() string {
	return l.name
}

// Severity returns the severity the level maps to.
func (l Level) Severity() Severity {
	return l.severity
}

// IsZero returns true if this is the zero value.
func (l Level) IsZero() bool {
	return l.name == ""
}

func (l Level) String() string {
	return l.name
}

// The fixed level set. Declaration order is the lookup order but carries
// no other meaning; ordering comparisons go through Severity.
var levels = []Level{
	{"MAY", SevOptional},
	{"OPTIONAL", SevOptional},
	{"SHOULD", SevRecommended},
	{"SHOULD_NOT", SevRecommended},
	{"RECOMMENDED", SevRecommended},
	{"MUST", SevRequired},
	{"MUST_NOT", SevRequired},
	{"SHALL", SevRequired},
	{"SHALL_NOT", SevRequired},
	{"REQUIRED", SevRequired},
}

// UnknownLevelError indicates a level name outside the fixed set.
type UnknownLevelError struct {
	Name string
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("unknown conformance level: %q", e.Name)
}

// GetLevel looks up a level by name, case-insensitively.
// Fails with *UnknownLevelError for unrecognized names.
func GetLevel(name string) (Level, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	for _, l := range levels {
		if l.name == normalized {
			return l, nil
		}
	}
	return Level{}, &UnknownLevelError{Name: name}
}

// MustGetLevel looks up a level or panics (for tests and static tables).
func MustGetLevel(name string) Level {
	l, err := GetLevel(name)
	if err != nil {
		panic(err)
	}
	return l
}

// Levels returns the fixed level set in declaration order.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}
