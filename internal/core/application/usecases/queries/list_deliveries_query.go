// Package queries contains read-only operations over the persistence store.
// Query handlers bypass the aggregate layer and read rows directly, since no
// lifecycle rule can be violated by looking.
package queries

import (
	"errors"
	"time"

	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/pkg/guard"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// ListDeliveriesQuery retrieves the deliveries visible to an actor.
// Visibility follows the role: requesters see what they requested, couriers
// what they are assigned to, dispatchers and admins everything. An optional
// status filter narrows the result.
//
// Example:
//
//	status := delivery.StatusPending
//	query, err := NewListDeliveriesQuery(actorID, account.RoleDispatcher, &status)
//	if err != nil {
//	    return err
//	}
//
//	deliveries, err := handler.Handle(ctx, query)
type ListDeliveriesQuery struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID
	role    account.Role
	status  *delivery.Status

	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery creates a query scoped to the given actor and role.
// status is optional; when present it must be a valid status.
func NewListDeliveriesQuery(
	actorID kernel.UUID,
	role account.Role,
	status *delivery.Status,
) (ListDeliveriesQuery, error) {
	listQuery := ListDeliveriesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		listQuery.setActorID(actorID),
		listQuery.setRole(role),
		listQuery.setStatus(status),
	); err != nil {
		return ListDeliveriesQuery{}, err
	}

	return listQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListDeliveriesQueryIsNotConstructed if validation fails.
func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

// ActorID returns the account the listing is scoped to.
func (q ListDeliveriesQuery) ActorID() kernel.UUID {
	return q.actorID
}

// Role returns the actor's role.
func (q ListDeliveriesQuery) Role() account.Role {
	return q.role
}

// Status returns the optional status filter, or nil for all statuses.
func (q ListDeliveriesQuery) Status() *delivery.Status {
	return q.status
}

func (q *ListDeliveriesQuery) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	q.actorID = actorID
	return nil
}

func (q *ListDeliveriesQuery) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	q.role = role
	return nil
}

func (q *ListDeliveriesQuery) setStatus(status *delivery.Status) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}

	q.status = status
	return nil
}

// DeliveryResponse is the read model returned by delivery queries.
type DeliveryResponse struct {
	ID             kernel.UUID
	Kind           delivery.PackageKind
	Description    string
	PickupAddress  string
	DropoffAddress string
	Status         delivery.Status
	Price          int
	RequesterID    kernel.UUID
	AssigneeID     *kernel.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int64
}
