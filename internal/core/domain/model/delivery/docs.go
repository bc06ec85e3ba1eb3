// Package delivery contains the Delivery aggregate and its lifecycle state
// machine.
//
// A delivery advances along a fixed status order from Pending to Delivered,
// with Cancelled reachable from every non-terminal status. The aggregate owns
// every mutation: status changes go through the state machine, the assignee is
// set exactly once when the delivery becomes Assigned, and cancellation
// freezes the status without clearing any field. Who may request which
// transition is decided outside this package by the transition engine in
// the domain services package.
package delivery
