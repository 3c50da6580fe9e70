package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crateval-dev/crateval/internal/domain/validation"
)

func Test_EventBus_SubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var order []string
	bus.Subscribe(validation.SubscriberFunc(func(validation.Event) { order = append(order, "first") }))
	bus.Subscribe(validation.SubscriberFunc(func(validation.Event) { order = append(order, "second") }))
	bus.Subscribe(nil)

	bus.Publish(validation.Event{Type: validation.ValidationStart})
	bus.Publish(validation.Event{Type: validation.ValidationEnd})

	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
}
