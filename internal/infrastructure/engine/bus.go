// Package engine drives validation runs: the event bus carrying run
// lifecycle notifications, the runner executing individual checks and
// the orchestrator walking profiles in severity order.
package engine

import (
	"github.com/crateval-dev/crateval/internal/domain/validation"
)

// EventBus fans run events out to subscribers. Publishing is
// synchronous and preserves subscription order, so a subscriber sees
// CheckStart before the CheckEnd of the same check and subscribers
// never observe events out of order relative to each other.
type EventBus struct {
	subscribers []validation.Subscriber
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a subscriber. Not safe for use while a run is
// publishing; wire subscribers before Execute.
func (b *EventBus) Subscribe(s validation.Subscriber) {
	if s == nil {
		return
	}
	b.subscribers = append(b.subscribers, s)
}

// Publish delivers the event to every subscriber in order.
func (b *EventBus) Publish(event validation.Event) {
	for _, s := range b.subscribers {
		s.OnEvent(event)
	}
}
