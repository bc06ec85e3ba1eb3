package ports

import (
	"context"

	"livraison/internal/events"
)

// Notifier pushes a transition event to external integrations, webhooks in
// practice. Notify is fire-and-forget: failures are the adapter's problem to
// log, never the caller's to handle, so no error is returned.
type Notifier interface {
	Notify(ctx context.Context, event events.Event)
}
