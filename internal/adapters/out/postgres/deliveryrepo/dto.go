// Package deliveryrepo provides data transfer objects and mapping functions for delivery persistence.
// This package implements the repository pattern for the delivery aggregate, handling
// the conversion between domain entities and database representations.
package deliveryrepo

import (
	"time"

	"github.com/google/uuid"

	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// Status and kind are stored as their string names so rows stay readable and
// the read-side queries can filter on them directly. Timestamps are owned by
// the aggregate, so GORM's automatic time tracking is disabled.
type DeliveryDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind           string     `gorm:"type:varchar(16)"`
	Description    string     `gorm:"type:text"`
	PickupAddress  string     `gorm:"type:text"`
	DropoffAddress string     `gorm:"type:text"`
	Status         string     `gorm:"type:varchar(32);index"`
	Price          int        ``
	RequesterID    uuid.UUID  `gorm:"type:uuid;index"`
	AssigneeID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt      time.Time  `gorm:"autoCreateTime:false;index"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime:false"`
	Version        int64      ``
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var assigneeID *uuid.UUID
	if id := aggregate.AssigneeID(); id != nil {
		raw := id.Bytes()
		assigneeID = &raw
	}

	return DeliveryDTO{
		ID:             aggregate.ID().Bytes(),
		Kind:           aggregate.Kind().String(),
		Description:    aggregate.Description(),
		PickupAddress:  aggregate.PickupAddress(),
		DropoffAddress: aggregate.DropoffAddress(),
		Status:         aggregate.Status().String(),
		Price:          aggregate.Price(),
		RequesterID:    aggregate.RequesterID().Bytes(),
		AssigneeID:     assigneeID,
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		Version:        aggregate.Version(),
	}
}

// toDomain converts a database DTO to a delivery aggregate using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}

	var assigneeID *kernel.UUID
	if dto.AssigneeID != nil {
		aID, assigneeErr := kernel.UUIDFromBytes((*dto.AssigneeID)[:])
		if assigneeErr != nil {
			return nil, assigneeErr
		}
		assigneeID = &aID
	}

	kind, err := delivery.PackageKindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		kind,
		dto.Description,
		dto.PickupAddress,
		dto.DropoffAddress,
		status,
		dto.Price,
		requesterID,
		assigneeID,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}
