// Package ports defines the contracts between the application core and
// infrastructure adapters: persistence, transaction control and outbound
// notification. Adapters implement these interfaces; the core only depends
// on them.
package ports

import (
	"context"
	"time"

	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	// The delivery must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate using the
	// version the aggregate was loaded with. When another transaction moved
	// the delivery since that load the update touches no rows and
	// errs.VersionConflictError is returned; the caller retries by reloading.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such delivery exists.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetAllPendingOlderThan retrieves deliveries still in Pending status
	// whose creation time is older than the given cutoff. Used by the
	// reminder job to surface deliveries nobody picked up.
	GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*delivery.Delivery, error)
}
