package account

import (
	"livraison/internal/pkg/errs"
)

// Role is the closed enumeration of actor roles. There are exactly four;
// no dynamic role sets exist.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleRequester creates deliveries and may cancel them while Pending.
	RoleRequester

	// RoleCourier carries deliveries it is assigned to.
	RoleCourier

	// RoleDispatcher assigns couriers and manages any delivery.
	RoleDispatcher

	// RoleAdmin has the same delivery permissions as a dispatcher.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleRequester:  "requester",
		RoleCourier:    "courier",
		RoleDispatcher: "dispatcher",
		RoleAdmin:      "admin",
	}
}

// Validate checks if the Role is one of the four defined roles.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidError("role")
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidError("role")
	}
	return nil
}

// String returns the lowercase name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// RoleFromString parses a role name as produced by String.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidError("role")
}

// IsPrivileged reports whether the role may act on any delivery and observe
// the "all deliveries" event stream.
func (r Role) IsPrivileged() bool {
	return r == RoleDispatcher || r == RoleAdmin
}
