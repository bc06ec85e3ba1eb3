package queries

import (
	"errors"

	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves one delivery by ID, subject to the same role
// visibility as the listing. A delivery outside the actor's scope reads as
// not found rather than forbidden, so the query leaks nothing about other
// people's deliveries.
type GetDeliveryQuery struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID
	role       account.Role

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query for a single delivery scoped to the
// given actor and role.
func NewGetDeliveryQuery(
	deliveryID kernel.UUID,
	actorID kernel.UUID,
	role account.Role,
) (GetDeliveryQuery, error) {
	getQuery := GetDeliveryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		getQuery.setDeliveryID(deliveryID),
		getQuery.setActorID(actorID),
		getQuery.setRole(role),
	); err != nil {
		return GetDeliveryQuery{}, err
	}

	return getQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryQueryIsNotConstructed if validation fails.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the delivery to fetch.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// ActorID returns the account the fetch is scoped to.
func (q GetDeliveryQuery) ActorID() kernel.UUID {
	return q.actorID
}

// Role returns the actor's role.
func (q GetDeliveryQuery) Role() account.Role {
	return q.role
}

func (q *GetDeliveryQuery) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	q.deliveryID = deliveryID
	return nil
}

func (q *GetDeliveryQuery) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	q.actorID = actorID
	return nil
}

func (q *GetDeliveryQuery) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	q.role = role
	return nil
}
