// Package events defines the immutable notification emitted after every
// successful delivery transition.
//
// Events exist only in flight: the dispatch flow creates one after a
// successful persist, the broadcast hub fans it out to connected observers,
// and it is discarded afterwards. Delivery is at-most-once and best-effort;
// an observer that was absent at emission time re-reads current state from
// the store instead. Events never carry credentials.
package events

import (
	"time"

	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/domain/model/kernel"
)

// Kind is the closed enumeration of event kinds.
// The wire names match the webhook event names exposed to integrators.
type Kind string

const (
	// KindCreated fires when a delivery is created in Pending.
	KindCreated Kind = "delivery_created"

	// KindAssigned fires when a delivery becomes Assigned to a courier.
	KindAssigned Kind = "delivery_assigned"

	// KindStatusChanged fires for every forward lifecycle move after Assigned.
	KindStatusChanged Kind = "delivery_status_changed"

	// KindCancelled fires when a delivery is cancelled.
	KindCancelled Kind = "delivery_cancelled"

	// KindPendingReminder fires for deliveries stuck in Pending past the
	// reminder cutoff. Unlike the other kinds it marks no transition.
	KindPendingReminder Kind = "delivery_pending_reminder"
)

// Event is an immutable record of one successful transition.
// It carries the subset of delivery fields observers need to update their
// view without re-fetching.
type Event struct {
	DeliveryID kernel.UUID
	Kind       Kind
	Status     delivery.Status
	ActorID    kernel.UUID
	AssigneeID *kernel.UUID
	Price      int
	OccurredAt time.Time
}

// ForCreation builds the event emitted right after a delivery is persisted
// for the first time.
func ForCreation(d *delivery.Delivery, actorID kernel.UUID) Event {
	return Event{
		DeliveryID: d.ID(),
		Kind:       KindCreated,
		Status:     d.Status(),
		ActorID:    actorID,
		Price:      d.Price(),
		OccurredAt: time.Now().UTC(),
	}
}

// ForPendingReminder builds the event the reminder job emits for a delivery
// that has sat in Pending too long. The requester is the actor: the reminder
// is about their request.
func ForPendingReminder(d *delivery.Delivery) Event {
	return Event{
		DeliveryID: d.ID(),
		Kind:       KindPendingReminder,
		Status:     d.Status(),
		ActorID:    d.RequesterID(),
		Price:      d.Price(),
		OccurredAt: time.Now().UTC(),
	}
}

// ForTransition builds the event for a successful status change, choosing
// the kind from the resulting status.
func ForTransition(d *delivery.Delivery, actorID kernel.UUID) Event {
	kind := KindStatusChanged
	switch d.Status() {
	case delivery.StatusAssigned:
		kind = KindAssigned
	case delivery.StatusCancelled:
		kind = KindCancelled
	}

	return Event{
		DeliveryID: d.ID(),
		Kind:       kind,
		Status:     d.Status(),
		ActorID:    actorID,
		AssigneeID: d.AssigneeID(),
		Price:      d.Price(),
		OccurredAt: time.Now().UTC(),
	}
}
