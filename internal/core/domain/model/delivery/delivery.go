package delivery

import (
	"errors"
	"fmt"
	"time"

	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery. This ensures all deliveries
// are properly validated.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

// Delivery represents a single delivery job tracked through the lifecycle
// state machine. It is the aggregate root for everything that may change on a
// job after creation.
//
// Delivery maintains these invariants:
//   - Must have a valid unique identifier and requester
//   - Pickup and dropoff addresses are non-empty
//   - The assignee is unset while the status is Pending, set exactly once on
//     assignment, and never cleared afterwards; cancellation freezes the
//     status but keeps requester and assignee intact
//   - Status only ever changes through the state machine in status.go
//   - Can only be created through NewDelivery or RestoreDelivery
//
// The struct uses private fields so every mutation runs through a validated
// method.
type Delivery struct {
	id             kernel.UUID
	kind           PackageKind
	description    string
	pickupAddress  string
	dropoffAddress string
	status         Status
	price          int
	requesterID    kernel.UUID
	assigneeID     *kernel.UUID
	createdAt      time.Time
	updatedAt      time.Time
	version        int64

	isConstructed bool
}

// NewDelivery creates a new Delivery in Pending status with validation.
// The price is in minor currency units and may be zero (quoted later).
//
// Example:
//
//	d, err := delivery.NewDelivery(
//	    kernel.NewUUID(), delivery.PackageKindParcel, "fragile",
//	    "12 Rue de la Paix", "3 Avenue Foch", 1500, requesterID,
//	)
func NewDelivery(
	id kernel.UUID,
	kind PackageKind,
	description string,
	pickupAddress string,
	dropoffAddress string,
	price int,
	requesterID kernel.UUID,
) (*Delivery, error) {
	now := time.Now().UTC()
	d := &Delivery{
		status:        StatusPending,
		description:   description,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setKind(kind),
		d.setPickupAddress(pickupAddress),
		d.setDropoffAddress(dropoffAddress),
		d.setPrice(price),
		d.setRequesterID(requesterID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence without applying
// lifecycle rules, since the stored state already passed them. It still
// validates every field so corrupted rows fail loudly.
func RestoreDelivery(
	id kernel.UUID,
	kind PackageKind,
	description string,
	pickupAddress string,
	dropoffAddress string,
	status Status,
	price int,
	requesterID kernel.UUID,
	assigneeID *kernel.UUID,
	createdAt time.Time,
	updatedAt time.Time,
	version int64,
) (*Delivery, error) {
	d := &Delivery{
		description:   description,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setKind(kind),
		d.setPickupAddress(pickupAddress),
		d.setDropoffAddress(dropoffAddress),
		d.setPrice(price),
		d.setRequesterID(requesterID),
		d.setStatus(status),
		d.setVersion(version),
	); err != nil {
		return nil, err
	}

	if assigneeID != nil {
		if err := assigneeID.Validate(); err != nil {
			return nil, err
		}
		d.assigneeID = assigneeID
	}

	if err := d.status.ValidateCanHaveAssignee(d.assigneeID != nil); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Delivery was constructed through a factory function.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by identifier.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Kind returns the package kind.
func (d *Delivery) Kind() PackageKind {
	return d.kind
}

// Description returns the free-text description.
func (d *Delivery) Description() string {
	return d.description
}

// PickupAddress returns the pickup address.
func (d *Delivery) PickupAddress() string {
	return d.pickupAddress
}

// DropoffAddress returns the dropoff address.
func (d *Delivery) DropoffAddress() string {
	return d.dropoffAddress
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// Price returns the price in minor currency units.
func (d *Delivery) Price() int {
	return d.price
}

// RequesterID returns the requester account identifier.
func (d *Delivery) RequesterID() kernel.UUID {
	return d.requesterID
}

// AssigneeID returns the assigned courier's account identifier.
// Returns nil while the delivery is Pending.
func (d *Delivery) AssigneeID() *kernel.UUID {
	return d.assigneeID
}

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// Version returns the optimistic-lock version the aggregate was read at.
// The repository conditions its write on this value and bumps it on success.
func (d *Delivery) Version() int64 {
	return d.version
}

// BumpVersion records that the repository wrote the next version. Called by
// persistence after a successful optimistic update so the in-memory aggregate
// matches the stored row; never called by domain logic.
func (d *Delivery) BumpVersion() {
	d.version++
}

// Assign moves the delivery into Assigned and records the courier.
//
// The state machine only permits this from Pending. The assignee is set here
// exactly once; reassignment is not modeled.
func (d *Delivery) Assign(assigneeID kernel.UUID) error {
	if err := assigneeID.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.TransitionTo(StatusAssigned)
	if err != nil {
		return err
	}

	d.status = newStatus
	d.assigneeID = &assigneeID
	d.touch()
	return nil
}

// MoveTo advances the delivery to target through the state machine.
//
// Assigned is rejected here because it carries the assignee side effect and
// must go through Assign. Cancellation freezes the status: requester and
// assignee remain untouched.
func (d *Delivery) MoveTo(target Status) error {
	if target == StatusAssigned {
		return errs.NewInvalidAssigneeError("transition to Assigned requires an assignee")
	}

	newStatus, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}

	d.status = newStatus
	d.touch()
	return nil
}

func (d *Delivery) touch() {
	d.updatedAt = time.Now().UTC()
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setKind(kind PackageKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	d.kind = kind
	return nil
}

func (d *Delivery) setPickupAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	d.pickupAddress = address
	return nil
}

func (d *Delivery) setDropoffAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("dropoffAddress")
	}
	d.dropoffAddress = address
	return nil
}

func (d *Delivery) setPrice(price int) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is negative", price))
	}
	d.price = price
	return nil
}

func (d *Delivery) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requesterID", err)
	}
	d.requesterID = id
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Delivery) setVersion(version int64) error {
	if version < 1 {
		return errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is not positive", version))
	}
	d.version = version
	return nil
}
