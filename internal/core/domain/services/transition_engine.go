package services

import (
	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/pkg/errs"
)

// TransitionEngine is a domain service that decides whether an actor may move
// a delivery to a requested status, and applies the move to the aggregate.
//
// Guards run in a fixed order so callers can rely on the rejection reason:
//
//  1. Terminal guard: Delivered/Cancelled reject everything (AlreadyTerminal)
//  2. Adjacency guard: the target must be the immediate successor or
//     Cancelled (InvalidTransition)
//  3. Authorization guard: the static policy table must grant the actor's
//     role and relationship the target status (Forbidden)
//  4. Assignment guard: moving into Assigned requires an assignee account
//     with the courier role (InvalidAssignee)
//
// On success the delivery's status, assignee, and updated-at are changed in
// memory only. Persistence is the caller's responsibility, and the caller
// must make persist-then-publish appear atomic to observers.
//
// Example:
//
//	engine := services.NewTransitionEngine()
//	err := engine.Attempt(d, delivery.StatusAssigned, dispatcher, courier)
//	switch {
//	case errors.Is(err, errs.ErrForbidden):
//	    // surface 403
//	case err != nil:
//	    // other rejection
//	default:
//	    // persist d, then publish the event
//	}
type TransitionEngine struct{}

// NewTransitionEngine creates a TransitionEngine.
func NewTransitionEngine() TransitionEngine {
	return TransitionEngine{}
}

// Attempt validates and applies the requested transition on d.
// assignee is only consulted for transitions into Assigned and may be nil
// otherwise. On rejection d is left untouched.
func (e TransitionEngine) Attempt(
	d *delivery.Delivery,
	target delivery.Status,
	actor *account.Account,
	assignee *account.Account,
) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	// Guards 1 and 2 live in the state machine. Running them before the
	// authorization guard keeps "wrong state" distinguishable from "not
	// your job", except for the requester edge case handled by the policy.
	if _, err := d.Status().TransitionTo(target); err != nil {
		return err
	}

	if err := authorize(actor.Role(), RelationshipOf(actor, d), d.Status(), target); err != nil {
		return err
	}

	if target == delivery.StatusAssigned {
		if assignee == nil {
			return errs.NewInvalidAssigneeError("transition to Assigned requires an assignee")
		}
		if err := assignee.Validate(); err != nil {
			return errs.NewInvalidAssigneeErrorWithCause("assignee account is invalid", err)
		}
		if assignee.Role() != account.RoleCourier {
			return errs.NewInvalidAssigneeErrorWithCause(
				"assignee must be a courier",
				errs.NewValueIsInvalidError(assignee.Role().String()),
			)
		}
		return d.Assign(assignee.ID())
	}

	return d.MoveTo(target)
}

// authorize implements the static policy table:
//
//	role       × relationship → allowed target statuses
//	requester  × requester-of → Cancelled, only while the delivery is Pending
//	courier    × assignee-of  → every forward status and Cancelled
//	dispatcher/admin × any    → everything, including Assigned and Cancelled
//	anything else             → nothing
//
// A requester cancelling a delivery that already left Pending gets Forbidden
// rather than InvalidTransition, so callers can tell "wrong state" apart from
// "contact a dispatcher".
func authorize(role account.Role, rel Relationship, current, target delivery.Status) error {
	if rel == Privileged {
		return nil
	}

	switch role {
	case account.RoleRequester:
		if rel == RequesterOf && target == delivery.StatusCancelled && current == delivery.StatusPending {
			return nil
		}
	case account.RoleCourier:
		if rel == AssigneeOf && target != delivery.StatusAssigned {
			return nil
		}
	case account.RoleDispatcher, account.RoleAdmin:
		// Privileged relationship is computed from these roles; an account
		// with one of them never reaches this switch.
		return nil
	case account.RoleUnknown:
	}

	return errs.NewForbiddenError(role.String(), target.String())
}
