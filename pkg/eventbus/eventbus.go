// Package eventbus defines the contract for publishing and subscribing to
// domain events. Implementations live under infra/eventbus.
package eventbus

import "context"

// Event is implemented by every domain event carried on the bus.
type Event interface {
	Type() string
}

// HandlerFunc handles a single event. Errors are logged by the bus, never
// propagated to the publisher; fan-out is fire-and-forget.
type HandlerFunc func(ctx context.Context, e Event) error

// Bus defines the contract for publishing and subscribing to domain events.
type Bus interface {
	// Emit dispatches the event to all handlers registered for its type.
	Emit(ctx context.Context, event Event) error
	// Register registers a handler for a specific event type.
	Register(eventType string, handler HandlerFunc)
}
