package validation

import (
	"github.com/crateval-dev/crateval/internal/domain/entities"
)

// EventType identifies a lifecycle stage of the validation traversal.
type EventType int

const (
	// ValidationStart is published once before the first profile.
	ValidationStart EventType = iota
	// ProfileStart is published before a profile's requirements run.
	ProfileStart
	// RequirementStart is published before a requirement's checks run.
	RequirementStart
	// CheckStart is published before a check runs.
	CheckStart
	// CheckEnd is published after a check ran; the result already holds
	// every issue the check produced.
	CheckEnd
	// RequirementEnd is published after all of a requirement's selected
	// checks ran.
	RequirementEnd
	// ProfileEnd is published after all of a profile's requirements ran.
	ProfileEnd
	// ValidationEnd is always published last, even on fail-fast halt.
	ValidationEnd
)

func (t EventType) String() string {
	switch t {
	case ValidationStart:
		return "validation_start"
	case ProfileStart:
		return "profile_start"
	case RequirementStart:
		return "requirement_start"
	case CheckStart:
		return "check_start"
	case CheckEnd:
		return "check_end"
	case RequirementEnd:
		return "requirement_end"
	case ProfileEnd:
		return "profile_end"
	case ValidationEnd:
		return "validation_end"
	default:
		return "unknown"
	}
}

// Event is one lifecycle notification. Which fields are set depends on
// the type: Profile on Profile*, Requirement on Requirement*, Check on
// Check*, Passed on CheckEnd/RequirementEnd, Result on ValidationEnd.
type Event struct {
	Type        EventType
	Profile     *entities.Profile
	Requirement *entities.Requirement
	Check       entities.Check
	Passed      *bool
	Result      *Result
}

// Subscriber receives every event of a run, synchronously and in the
// traversal's total order. Subscribers may read the run's result (already
// updated when CheckEnd/RequirementEnd arrive) but must not mutate
// orchestration state. A slow subscriber stalls the run.
type Subscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(event Event)

// OnEvent implements Subscriber.
func (f SubscriberFunc) OnEvent(event Event) {
	f(event)
}
