package commands

import (
	"errors"

	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/pkg/guard"
)

var (
	ErrRegisterAccountCommandIsNotConstructed = errors.New(
		"RegisterAccountCommand must be created via NewRegisterAccountCommand constructor",
	)
	ErrNameIsRequired     = errors.New("name is required")
	ErrEmailIsRequired    = errors.New("email is required")
	ErrPhoneIsRequired    = errors.New("phone is required")
	ErrPasswordIsTooShort = errors.New("password must be at least 8 characters")
)

// minPasswordLength is enforced here rather than in the account aggregate,
// which only ever sees the hash.
const minPasswordLength = 8

// RegisterAccountCommand represents a request to register a new account.
// Carries the plaintext password; hashing happens in the handler so the
// aggregate never sees it.
type RegisterAccountCommand struct { //nolint:recvcheck //using for validation
	accountID kernel.UUID
	name      string
	email     string
	phone     string
	password  string
	role      account.Role

	guard guard.ConstructorGuard
}

// NewRegisterAccountCommand creates a command to register an account.
// Validates the identifier, contact fields, password length and role.
func NewRegisterAccountCommand(
	accountID kernel.UUID,
	name string,
	email string,
	phone string,
	password string,
	role account.Role,
) (RegisterAccountCommand, error) {
	registerCommand := RegisterAccountCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		registerCommand.setAccountID(accountID),
		registerCommand.setName(name),
		registerCommand.setEmail(email),
		registerCommand.setPhone(phone),
		registerCommand.setPassword(password),
		registerCommand.setRole(role),
	); err != nil {
		return RegisterAccountCommand{}, err
	}

	return registerCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterAccountCommandIsNotConstructed if validation fails.
func (c RegisterAccountCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAccountCommandIsNotConstructed)
}

// AccountID returns the unique identifier for the account.
func (c RegisterAccountCommand) AccountID() kernel.UUID {
	return c.accountID
}

// Name returns the display name.
func (c RegisterAccountCommand) Name() string {
	return c.name
}

// Email returns the contact email.
func (c RegisterAccountCommand) Email() string {
	return c.email
}

// Phone returns the phone number used as the login identifier.
func (c RegisterAccountCommand) Phone() string {
	return c.phone
}

// Password returns the plaintext password to hash.
func (c RegisterAccountCommand) Password() string {
	return c.password
}

// Role returns the requested role.
func (c RegisterAccountCommand) Role() account.Role {
	return c.role
}

func (c *RegisterAccountCommand) setAccountID(accountID kernel.UUID) error {
	if err := accountID.Validate(); err != nil {
		return err
	}

	c.accountID = accountID
	return nil
}

func (c *RegisterAccountCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterAccountCommand) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}

	c.email = email
	return nil
}

func (c *RegisterAccountCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	c.phone = phone
	return nil
}

func (c *RegisterAccountCommand) setPassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordIsTooShort
	}

	c.password = password
	return nil
}

func (c *RegisterAccountCommand) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}
