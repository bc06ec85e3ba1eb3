package services

import (
	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/delivery"
)

// Relationship describes how an actor relates to a specific delivery.
// It is computed per request; nothing persists it.
type Relationship int

const (
	// Unrelated means the actor neither owns nor carries the delivery and
	// holds no privileged role.
	Unrelated Relationship = iota

	// RequesterOf means the actor created the delivery.
	RequesterOf

	// AssigneeOf means the actor is the courier assigned to the delivery.
	AssigneeOf

	// Privileged means the actor's role grants access to any delivery.
	Privileged
)

func getRelationshipStrings() map[Relationship]string {
	return map[Relationship]string{
		Unrelated:   "unrelated",
		RequesterOf: "requester-of",
		AssigneeOf:  "assignee-of",
		Privileged:  "privileged",
	}
}

// String returns the human-readable name of the relationship.
func (r Relationship) String() string {
	if str, ok := getRelationshipStrings()[r]; ok {
		return str
	}
	return "unrelated"
}

// RelationshipOf computes the actor's relationship to the delivery.
// A privileged role wins over ownership so dispatchers acting on their own
// deliveries keep their full permissions.
func RelationshipOf(actor *account.Account, d *delivery.Delivery) Relationship {
	if actor.Role().IsPrivileged() {
		return Privileged
	}
	if actor.Role() == account.RoleRequester && d.RequesterID().IsEqual(actor.ID()) {
		return RequesterOf
	}
	if actor.Role() == account.RoleCourier && d.AssigneeID() != nil && d.AssigneeID().IsEqual(actor.ID()) {
		return AssigneeOf
	}
	return Unrelated
}
