package queries

import (
	"context"

	"gorm.io/gorm"

	"livraison/internal/core/domain/model/account"
	"livraison/internal/pkg/errs"
)

// GetDeliveryQueryHandler reads a single delivery from the database.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for single-delivery reads.
// Requires a GORM database connection for query execution.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle fetches the delivery when it exists and is visible to the actor.
// Returns errs.ObjectNotFoundError otherwise.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryResponse{}, err
	}

	sqlQuery := "SELECT " + deliveryColumns + " FROM deliveries WHERE id = ?"
	args := []any{query.DeliveryID().Bytes()}

	switch query.Role() {
	case account.RoleRequester:
		sqlQuery += " AND requester_id = ?"
		args = append(args, query.ActorID().Bytes())
	case account.RoleCourier:
		sqlQuery += " AND assignee_id = ?"
		args = append(args, query.ActorID().Bytes())
	case account.RoleDispatcher, account.RoleAdmin:
		// Privileged roles see everything.
	}

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return DeliveryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return DeliveryResponse{}, err
		}
		return DeliveryResponse{}, errs.NewObjectNotFoundError("delivery", query.DeliveryID())
	}

	response, err := scanDeliveryRow(rows)
	if err != nil {
		return DeliveryResponse{}, err
	}

	return response, nil
}
