package commands

import (
	"context"

	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/ports"
	"livraison/internal/events"
)

// CreateDeliveryCommandHandler handles the business logic for delivery creation.
// Creates new deliveries in Pending status and announces them to observers and
// webhook integrations once they are durably persisted.
//
// Example:
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory, hub, notifier)
//	cmd, _ := NewCreateDeliveryCommand(
//	    kernel.NewUUID(), requesterID, delivery.PackageKindMeal,
//	    "", "2 Place Bellecour", "18 Quai Saint-Antoine", 900,
//	)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("delivery creation failed: %w", err)
//	}
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	notifier   ports.Notifier
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
// Requires a DeliveryUoWFactory for transactional persistence plus the event
// publisher and notifier fired after a successful commit.
func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
	}
}

// Handle processes the delivery creation command.
// Persists the new delivery in Pending status inside a transaction, then
// emits the creation event. The event only fires after the commit succeeds,
// so observers never learn about state that was rolled back.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		cmd.Kind(),
		cmd.Description(),
		cmd.PickupAddress(),
		cmd.DropoffAddress(),
		cmd.Price(),
		cmd.RequesterID(),
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := events.ForCreation(aggregate, cmd.RequesterID())
	h.publisher.Publish(event)
	h.notifier.Notify(ctx, event)

	return nil
}
