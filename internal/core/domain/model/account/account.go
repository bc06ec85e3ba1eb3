package account

import (
	"errors"
	"time"

	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/pkg/errs"
)

// ErrAccountIsNotConstructed is returned when an Account instance was not
// created through NewAccount or RestoreAccount.
var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount")

// Account represents an authenticated identity in the system.
//
// Invariants:
//   - Must have a valid unique identifier, name, email, and phone
//   - Role is one of the four fixed roles and never changes
//   - The password hash is opaque to the domain; hashing happens at the
//     application boundary and the hash never leaves the aggregate through
//     events or query responses
type Account struct {
	id           kernel.UUID
	name         string
	email        string
	phone        string
	passwordHash string
	role         Role
	createdAt    time.Time

	isConstructed bool
}

// NewAccount creates a new Account with validation.
// The passwordHash must already be hashed; this constructor never sees a
// plaintext password.
func NewAccount(
	id kernel.UUID,
	name string,
	email string,
	phone string,
	passwordHash string,
	role Role,
) (*Account, error) {
	a := &Account{
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setEmail(email),
		a.setPhone(phone),
		a.setPasswordHash(passwordHash),
		a.setRole(role),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAccount reconstructs an Account from persistence.
func RestoreAccount(
	id kernel.UUID,
	name string,
	email string,
	phone string,
	passwordHash string,
	role Role,
	createdAt time.Time,
) (*Account, error) {
	a := &Account{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setEmail(email),
		a.setPhone(phone),
		a.setPasswordHash(passwordHash),
		a.setRole(role),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Account was constructed through a factory function.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// IsEqual compares two accounts by identifier.
func (a *Account) IsEqual(other *Account) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Name returns the display name.
func (a *Account) Name() string {
	return a.name
}

// Email returns the email address.
func (a *Account) Email() string {
	return a.email
}

// Phone returns the phone number used as the login identifier.
func (a *Account) Phone() string {
	return a.phone
}

// PasswordHash returns the stored credential hash.
// Only the authentication boundary may compare against it.
func (a *Account) PasswordHash() string {
	return a.passwordHash
}

// Role returns the account's fixed role.
func (a *Account) Role() Role {
	return a.role
}

// CreatedAt returns the creation timestamp.
func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *Account) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	a.email = email
	return nil
}

func (a *Account) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	a.phone = phone
	return nil
}

func (a *Account) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	a.passwordHash = hash
	return nil
}

func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
