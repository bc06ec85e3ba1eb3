package queries

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/domain/model/kernel"
)

const deliveryColumns = `
	id,
	kind,
	description,
	pickup_address,
	dropoff_address,
	status,
	price,
	requester_id,
	assignee_id,
	created_at,
	updated_at,
	version`

// ListDeliveriesQueryHandler reads deliveries straight from the database.
// The role scope is part of the SQL, so an actor can never receive a row
// outside their visibility no matter what the transport sends.
type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListDeliveriesQueryHandler creates a handler for delivery listings.
// Requires a GORM database connection for query execution.
func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

// Handle executes the listing scoped to the actor's role.
// Results are sorted newest first with the ID as a tiebreaker.
func (h ListDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)

	switch query.Role() {
	case account.RoleRequester:
		conditions = append(conditions, "requester_id = ?")
		args = append(args, query.ActorID().Bytes())
	case account.RoleCourier:
		conditions = append(conditions, "assignee_id = ?")
		args = append(args, query.ActorID().Bytes())
	case account.RoleDispatcher, account.RoleAdmin:
		// Privileged roles see everything.
	}

	if query.Status() != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, query.Status().String())
	}

	sqlQuery := "SELECT " + deliveryColumns + " FROM deliveries"
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY created_at DESC, id"

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]DeliveryResponse, 0)
	for rows.Next() {
		response, scanErr := scanDeliveryRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		deliveries = append(deliveries, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}

// scanDeliveryRow maps one deliveries row onto the read model.
func scanDeliveryRow(rows *sql.Rows) (DeliveryResponse, error) {
	var (
		response     DeliveryResponse
		id           uuid.UUID
		kind, status string
		requesterID  uuid.UUID
		assigneeID   uuid.NullUUID
	)

	if err := rows.Scan(
		&id,
		&kind,
		&response.Description,
		&response.PickupAddress,
		&response.DropoffAddress,
		&status,
		&response.Price,
		&requesterID,
		&assigneeID,
		&response.CreatedAt,
		&response.UpdatedAt,
		&response.Version,
	); err != nil {
		return DeliveryResponse{}, err
	}

	deliveryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return DeliveryResponse{}, err
	}
	response.ID = deliveryID

	requester, err := kernel.UUIDFromBytes(requesterID[:])
	if err != nil {
		return DeliveryResponse{}, err
	}
	response.RequesterID = requester

	if assigneeID.Valid {
		assignee, assigneeErr := kernel.UUIDFromBytes(assigneeID.UUID[:])
		if assigneeErr != nil {
			return DeliveryResponse{}, assigneeErr
		}
		response.AssigneeID = &assignee
	}

	parsedKind, err := delivery.PackageKindFromString(kind)
	if err != nil {
		return DeliveryResponse{}, err
	}
	response.Kind = parsedKind

	parsedStatus, err := delivery.StatusFromString(status)
	if err != nil {
		return DeliveryResponse{}, err
	}
	response.Status = parsedStatus

	return response, nil
}
