package http

import (
	"time"

	"livraison/internal/core/application/usecases/queries"
	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/events"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest is the login payload. The phone number is the login identifier.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// AuthResponse carries the issued bearer token.
type AuthResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
}

// CreateDeliveryRequest is the payload for registering a new delivery.
type CreateDeliveryRequest struct {
	Kind           string `json:"kind"`
	Description    string `json:"description"`
	PickupAddress  string `json:"pickup_address"`
	DropoffAddress string `json:"dropoff_address"`
	Price          int    `json:"price"`
}

// CreateDeliveryResponse returns the server-generated delivery identifier.
type CreateDeliveryResponse struct {
	ID string `json:"id"`
}

// TransitionRequest names the target status and, for transitions into
// Assigned, the courier to assign.
type TransitionRequest struct {
	Target     string  `json:"target"`
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// DeliveryView is the JSON projection of one delivery.
type DeliveryView struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	Description    string    `json:"description"`
	PickupAddress  string    `json:"pickup_address"`
	DropoffAddress string    `json:"dropoff_address"`
	Status         string    `json:"status"`
	Price          int       `json:"price"`
	RequesterID    string    `json:"requester_id"`
	AssigneeID     *string   `json:"assignee_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Version        int64     `json:"version"`
}

// EventView is the JSON projection of one broadcast event, used as the SSE
// data payload.
type EventView struct {
	Event      string    `json:"event"`
	DeliveryID string    `json:"delivery_id"`
	Status     string    `json:"status"`
	ActorID    string    `json:"actor_id"`
	AssigneeID *string   `json:"assignee_id,omitempty"`
	Price      int       `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WebhookRequest names a webhook endpoint URL to register or remove.
type WebhookRequest struct {
	URL string `json:"url"`
}

func toDeliveryView(response queries.DeliveryResponse) DeliveryView {
	var assigneeID *string
	if response.AssigneeID != nil {
		raw := response.AssigneeID.String()
		assigneeID = &raw
	}

	return DeliveryView{
		ID:             response.ID.String(),
		Kind:           response.Kind.String(),
		Description:    response.Description,
		PickupAddress:  response.PickupAddress,
		DropoffAddress: response.DropoffAddress,
		Status:         response.Status.String(),
		Price:          response.Price,
		RequesterID:    response.RequesterID.String(),
		AssigneeID:     assigneeID,
		CreatedAt:      response.CreatedAt,
		UpdatedAt:      response.UpdatedAt,
		Version:        response.Version,
	}
}

// toDeliveryViewFromAggregate projects a domain aggregate, used where a
// command hands back the resulting state directly instead of a read model.
func toDeliveryViewFromAggregate(d *delivery.Delivery) DeliveryView {
	var assigneeID *string
	if d.AssigneeID() != nil {
		raw := d.AssigneeID().String()
		assigneeID = &raw
	}

	return DeliveryView{
		ID:             d.ID().String(),
		Kind:           d.Kind().String(),
		Description:    d.Description(),
		PickupAddress:  d.PickupAddress(),
		DropoffAddress: d.DropoffAddress(),
		Status:         d.Status().String(),
		Price:          d.Price(),
		RequesterID:    d.RequesterID().String(),
		AssigneeID:     assigneeID,
		CreatedAt:      d.CreatedAt(),
		UpdatedAt:      d.UpdatedAt(),
		Version:        d.Version(),
	}
}

func toEventView(event events.Event) EventView {
	var assigneeID *string
	if event.AssigneeID != nil {
		raw := event.AssigneeID.String()
		assigneeID = &raw
	}

	return EventView{
		Event:      string(event.Kind),
		DeliveryID: event.DeliveryID.String(),
		Status:     event.Status.String(),
		ActorID:    event.ActorID.String(),
		AssigneeID: assigneeID,
		Price:      event.Price,
		OccurredAt: event.OccurredAt,
	}
}
