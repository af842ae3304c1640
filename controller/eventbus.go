package controller

import (
	"fmt"

	"github.com/gechr/clog"
)

// Handler receives one published Event. It must not block or mutate the
// session directly; any follow-up mutation belongs in a fresh Controller
// call.
type Handler func(Event)

// EventBus is a type-keyed publish-subscribe registry, the Go equivalent of
// application/event_bus.py's EventBus: subscribers are grouped by the
// concrete event type they asked for, and a handler panic is caught,
// logged, and does not stop delivery to the remaining subscribers.
//
// Unlike the Python original, which re-raises handler exceptions when
// __debug__ is set, this bus always recovers: a panicking subscriber is a
// bug in that subscriber, not a reason to crash every other view's event
// delivery.
type EventBus struct {
	handlers map[string][]Handler
}

// NewEventBus returns an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[string][]Handler)}
}

func eventKey(e Event) string {
	return fmt.Sprintf("%T", e)
}

// Subscribe registers handler for every event whose concrete type matches
// sample's (sample is only used to derive the type key; its field values are
// ignored).
func (b *EventBus) Subscribe(sample Event, handler Handler) {
	key := eventKey(sample)
	b.handlers[key] = append(b.handlers[key], handler)
}

// Publish delivers event to every handler subscribed to its concrete type.
func (b *EventBus) Publish(event Event) {
	key := eventKey(event)
	for _, h := range b.handlers[key] {
		b.dispatch(h, event)
	}
}

func (b *EventBus) dispatch(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			clog.Error().Str("event_type", eventKey(event)).Msgf("event handler panicked: %v", r)
		}
	}()
	h(event)
}

// Clear removes every subscription.
func (b *EventBus) Clear() {
	b.handlers = make(map[string][]Handler)
}
