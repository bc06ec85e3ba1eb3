package commands

import (
	"errors"

	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/pkg/guard"
)

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand represents a request to move a delivery to a
// target status on behalf of an authenticated actor. Transitions into
// Assigned additionally name the courier to assign.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand(
//	    deliveryID, delivery.StatusAssigned, dispatcherID, &courierID,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // the lifecycle does not allow this move
//	case errors.Is(err, errs.ErrForbidden):
//	    // the actor may not perform it
//	case errors.Is(err, errs.ErrVersionConflict):
//	    // a concurrent transition won; reload and retry
//	}
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	target     delivery.Status
	actorID    kernel.UUID
	assigneeID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a command to move a delivery.
// assigneeID is optional and only meaningful for transitions into Assigned;
// when present it must be a valid identifier.
func NewRequestTransitionCommand(
	deliveryID kernel.UUID,
	target delivery.Status,
	actorID kernel.UUID,
	assigneeID *kernel.UUID,
) (RequestTransitionCommand, error) {
	transitionCommand := RequestTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setDeliveryID(deliveryID),
		transitionCommand.setTarget(target),
		transitionCommand.setActorID(actorID),
		transitionCommand.setAssigneeID(assigneeID),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRequestTransitionCommandIsNotConstructed if validation fails.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// DeliveryID returns the delivery to move.
func (c RequestTransitionCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Target returns the requested target status.
func (c RequestTransitionCommand) Target() delivery.Status {
	return c.target
}

// ActorID returns the account requesting the transition.
func (c RequestTransitionCommand) ActorID() kernel.UUID {
	return c.actorID
}

// AssigneeID returns the courier to assign, or nil when the transition does
// not target Assigned.
func (c RequestTransitionCommand) AssigneeID() *kernel.UUID {
	return c.assigneeID
}

func (c *RequestTransitionCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *RequestTransitionCommand) setTarget(target delivery.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *RequestTransitionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *RequestTransitionCommand) setAssigneeID(assigneeID *kernel.UUID) error {
	if assigneeID == nil {
		return nil
	}
	if err := assigneeID.Validate(); err != nil {
		return err
	}

	c.assigneeID = assigneeID
	return nil
}
