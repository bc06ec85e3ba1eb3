package commands

import (
	"context"
	"errors"

	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/domain/services"
	"livraison/internal/core/ports"
	"livraison/internal/events"
	"livraison/internal/pkg/errs"
)

// RequestTransitionCommandHandler orchestrates the transition flow.
// Loads the delivery and the acting account, runs the transition engine,
// persists the moved delivery with its optimistic version check, and only
// then announces the change. On any rejection nothing is persisted and no
// event fires.
//
// Example:
//
//	handler := NewRequestTransitionCommandHandler(uowFactory, engine, hub, notifier)
//	moved, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrVersionConflict) {
//	    // another actor moved the delivery first; the client reloads
//	}
type RequestTransitionCommandHandler struct {
	uowFactory UoWFactory
	engine     services.TransitionEngine
	publisher  ports.EventPublisher
	notifier   ports.Notifier
}

// NewRequestTransitionCommandHandler creates a handler for transition requests.
// Requires a UoWFactory spanning deliveries and accounts, the transition
// engine, and the post-commit event publisher and notifier.
func NewRequestTransitionCommandHandler(
	uowFactory UoWFactory,
	engine services.TransitionEngine,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		publisher:  publisher,
		notifier:   notifier,
	}
}

// Handle processes the transition request and returns the moved delivery so
// the caller learns the resulting state, including the refreshed version for
// its next optimistic attempt, without a follow-up read.
// The delivery is persisted with the version it was loaded at; when a
// concurrent transition commits first the update reports
// errs.VersionConflictError and the whole request fails without retrying,
// since the winning transition may have changed what is allowed.
// The event fires after the commit, never before.
func (h RequestTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd RequestTransitionCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	accountRepo := uow.AccountRepository()

	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	actor, err := accountRepo.Get(ctx, cmd.ActorID())
	if err != nil {
		return nil, err
	}

	assignee, err := h.loadAssignee(ctx, accountRepo, cmd)
	if err != nil {
		return nil, err
	}

	if err = h.engine.Attempt(aggregate, cmd.Target(), actor, assignee); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := events.ForTransition(aggregate, actor.ID())
	h.publisher.Publish(event)
	h.notifier.Notify(ctx, event)

	return aggregate, nil
}

// loadAssignee resolves the assignee account for transitions into Assigned.
// A named assignee that does not exist is an invalid assignee, not a missing
// object: the delivery itself was found.
func (h RequestTransitionCommandHandler) loadAssignee(
	ctx context.Context,
	accountRepo ports.AccountRepository,
	cmd RequestTransitionCommand,
) (*account.Account, error) {
	if cmd.AssigneeID() == nil {
		return nil, nil //nolint:nilnil //absence is a valid outcome here
	}

	assignee, err := accountRepo.Get(ctx, *cmd.AssigneeID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewInvalidAssigneeErrorWithCause("assignee account does not exist", err)
	}
	if err != nil {
		return nil, err
	}

	return assignee, nil
}
