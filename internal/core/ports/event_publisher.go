package ports

import (
	"livraison/internal/events"
)

// EventPublisher hands a transition event to the in-process broadcast path.
// Publish must return without waiting on any observer; implementations drop
// rather than block when they cannot keep up.
type EventPublisher interface {
	Publish(event events.Event)
}
