package delivery

import (
	"livraison/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with a fixed, ordered lifecycle:
//
//	Pending → Assigned → EnRouteToPickup → AtPickup → PickedUp → EnRouteToDropoff → Delivered
//
// Cancelled is reachable from every status except the terminal ones.
// Delivered and Cancelled are terminal: no transition leaves them.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of every delivery.
	// The assignee is always unset while a delivery is Pending.
	StatusPending

	// StatusAssigned indicates a dispatcher assigned a courier.
	StatusAssigned

	// StatusEnRouteToPickup indicates the courier is heading to the pickup address.
	StatusEnRouteToPickup

	// StatusAtPickup indicates the courier arrived at the pickup address.
	StatusAtPickup

	// StatusPickedUp indicates the courier collected the package.
	StatusPickedUp

	// StatusEnRouteToDropoff indicates the courier is heading to the dropoff address.
	StatusEnRouteToDropoff

	// StatusDelivered indicates the package reached its destination.
	// Terminal status.
	StatusDelivered

	// StatusCancelled indicates the delivery was cancelled before completion.
	// Terminal status; reachable from every non-terminal status.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:          "Unknown",
		StatusPending:          "Pending",
		StatusAssigned:         "Assigned",
		StatusEnRouteToPickup:  "EnRouteToPickup",
		StatusAtPickup:         "AtPickup",
		StatusPickedUp:         "PickedUp",
		StatusEnRouteToDropoff: "EnRouteToDropoff",
		StatusDelivered:        "Delivered",
		StatusCancelled:        "Cancelled",
	}
}

// lifecycleOrder is the fixed happy-path sequence. Cancellation is the only
// allowed jump outside of it.
func lifecycleOrder() []Status {
	return []Status{
		StatusPending,
		StatusAssigned,
		StatusEnRouteToPickup,
		StatusAtPickup,
		StatusPickedUp,
		StatusEnRouteToDropoff,
		StatusDelivered,
	}
}

// Validate checks if the Status value is one of the defined lifecycle
// statuses. StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidError("status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as produced by String.
// Used when reconstructing a status from transport or persistence input.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", errs.NewValueIsInvalidError(s))
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the immediate successor in the lifecycle order.
// The second return value is false for Delivered, Cancelled, and Unknown.
func (s Status) Next() (Status, bool) {
	order := lifecycleOrder()
	for i, status := range order[:len(order)-1] {
		if status == s {
			return order[i+1], true
		}
	}
	return StatusUnknown, false
}

// ValidateCanHaveAssignee validates the consistency between status and
// assignee presence when restoring from persistence.
//
// Rules:
//   - Pending deliveries must not have an assignee
//   - Every in-progress or Delivered status requires one
//   - Cancelled allows both: a delivery cancelled while Pending never had an
//     assignee, and cancellation clears nothing
func (s Status) ValidateCanHaveAssignee(assignee bool) error {
	if assignee && s == StatusPending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			errs.NewValueIsInvalidError("a Pending delivery cannot have an assignee"),
		)
	}

	if !assignee && !s.IsTerminal() && s != StatusPending && s != StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			errs.NewValueIsInvalidError(s.String()+" requires an assignee"),
		)
	}

	if !assignee && s == StatusDelivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			errs.NewValueIsInvalidError("a Delivered delivery requires an assignee"),
		)
	}

	return nil
}

// TransitionTo checks the pure state-machine rules for moving to target and
// returns the resulting status.
//
// Rules, checked in order:
//   - a terminal status rejects everything with ErrAlreadyTerminal
//   - target must be the immediate successor or StatusCancelled,
//     otherwise ErrInvalidTransition
//
// Authorization is deliberately not checked here; the transition engine
// layers it on top.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}

	if s.IsTerminal() {
		return StatusUnknown, errs.NewAlreadyTerminalError(s.String())
	}

	if target == StatusCancelled {
		return StatusCancelled, nil
	}

	if next, ok := s.Next(); ok && next == target {
		return target, nil
	}

	return StatusUnknown, errs.NewInvalidTransitionError(s.String(), target.String())
}
