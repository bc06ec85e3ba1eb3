package commands

import (
	"context"
	"time"

	"livraison/internal/core/ports"
	"livraison/internal/events"
)

// RemindPendingDeliveriesCommandHandler notifies integrators about deliveries
// stuck in Pending. The scan is read-only; nothing on the delivery changes,
// so repeated reminders for the same delivery are expected until it moves.
type RemindPendingDeliveriesCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   ports.Notifier
}

// NewRemindPendingDeliveriesCommandHandler creates a handler for the stale
// Pending reminder scan.
func NewRemindPendingDeliveriesCommandHandler(
	uowFactory DeliveryUoWFactory,
	notifier ports.Notifier,
) RemindPendingDeliveriesCommandHandler {
	return RemindPendingDeliveriesCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle finds every delivery still Pending past the cutoff and emits a
// reminder notification for each. Runs without a transaction: a single
// SELECT needs no atomicity and the job must never hold locks.
func (h RemindPendingDeliveriesCommandHandler) Handle(ctx context.Context, cmd RemindPendingDeliveriesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-cmd.OlderThan())

	stale, err := h.uowFactory.Create().DeliveryRepository().GetAllPendingOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, aggregate := range stale {
		h.notifier.Notify(ctx, events.ForPendingReminder(aggregate))
	}

	return nil
}
