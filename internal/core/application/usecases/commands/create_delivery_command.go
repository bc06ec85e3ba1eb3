package commands

import (
	"errors"

	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrPickupAddressIsRequired  = errors.New("pickup address is required")
	ErrDropoffAddressIsRequired = errors.New("dropoff address is required")
	ErrPriceIsNegative          = errors.New("price must not be negative")
)

// CreateDeliveryCommand represents a request to register a new delivery.
// Encapsulates the package details, both addresses and the quoted price.
//
// Example:
//
//	deliveryID := kernel.NewUUID()
//	cmd, err := NewCreateDeliveryCommand(
//	    deliveryID, requesterID, delivery.PackageKindParcel,
//	    "fragile", "12 Rue de la Paix", "3 Avenue Foch", 1500,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create delivery: %w", err)
//	}
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID     kernel.UUID
	requesterID    kernel.UUID
	kind           delivery.PackageKind
	description    string
	pickupAddress  string
	dropoffAddress string
	price          int

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// Validates identifiers, package kind, both addresses and the price.
// Returns an error if any validation fails.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	requesterID kernel.UUID,
	kind delivery.PackageKind,
	description string,
	pickupAddress string,
	dropoffAddress string,
	price int,
) (CreateDeliveryCommand, error) {
	deliveryCommand := CreateDeliveryCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveryCommand.setDeliveryID(deliveryID),
		deliveryCommand.setRequesterID(requesterID),
		deliveryCommand.setKind(kind),
		deliveryCommand.setPickupAddress(pickupAddress),
		deliveryCommand.setDropoffAddress(dropoffAddress),
		deliveryCommand.setPrice(price),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return deliveryCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDeliveryCommandIsNotConstructed if validation fails.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the unique identifier for the delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// RequesterID returns the account that requests the delivery.
func (c CreateDeliveryCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Kind returns the package kind.
func (c CreateDeliveryCommand) Kind() delivery.PackageKind {
	return c.kind
}

// Description returns the free-form package description. May be empty.
func (c CreateDeliveryCommand) Description() string {
	return c.description
}

// PickupAddress returns the pickup street address.
func (c CreateDeliveryCommand) PickupAddress() string {
	return c.pickupAddress
}

// DropoffAddress returns the dropoff street address.
func (c CreateDeliveryCommand) DropoffAddress() string {
	return c.dropoffAddress
}

// Price returns the quoted price in minor currency units.
func (c CreateDeliveryCommand) Price() int {
	return c.price
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}

func (c *CreateDeliveryCommand) setKind(kind delivery.PackageKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *CreateDeliveryCommand) setPickupAddress(address string) error {
	if address == "" {
		return ErrPickupAddressIsRequired
	}

	c.pickupAddress = address
	return nil
}

func (c *CreateDeliveryCommand) setDropoffAddress(address string) error {
	if address == "" {
		return ErrDropoffAddressIsRequired
	}

	c.dropoffAddress = address
	return nil
}

func (c *CreateDeliveryCommand) setPrice(price int) error {
	if price < 0 {
		return ErrPriceIsNegative
	}

	c.price = price
	return nil
}
