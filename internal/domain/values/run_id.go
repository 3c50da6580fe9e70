package values

import (
	"fmt"

	"github.com/google/uuid"
)

// RunID uniquely identifies a validation run.
// Exported reports carry it so results can be correlated across tools.
type RunID struct {
	value uuid.UUID
}

// NewRunID creates a new random run ID
func NewRunID() RunID {
	return RunID{value: uuid.New()}
}

// ParseRunID parses a string into a RunID
func ParseRunID(s string) (RunID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RunID{}, fmt.Errorf("invalid run ID: %w", err)
	}
	return RunID{value: id}, nil
}

// String returns the string representation
func (r RunID) String() string {
	return r.value.String()
}

// IsZero returns true if this is the zero value
func (r RunID) IsZero() bool {
	return r.value == uuid.Nil
}

// Equals checks if two RunIDs are equal
func (r RunID) Equals(other RunID) bool {
	return r.value == other.value
}

// MarshalJSON implements json.Marshaler
func (r RunID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.value.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RunID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 {
		return fmt.Errorf("invalid run ID JSON")
	}
	s = s[1 : len(s)-1]

	id, err := ParseRunID(s)
	if err != nil {
		return err
	}
	*r = id
	return nil
}
