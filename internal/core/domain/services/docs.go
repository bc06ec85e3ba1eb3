// Package services contains stateless domain services that coordinate rules
// across aggregates.
//
// The transition engine is the single entry point for changing a delivery's
// status. It layers the authorization policy (who may move a delivery, given
// their role and their relationship to it) on top of the pure state machine
// owned by the delivery package, and applies the assignment side effect when
// a delivery becomes Assigned. The engine performs no I/O; loading and
// persisting aggregates is the application layer's responsibility.
package services
