package ports

import (
	"context"

	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for accounts.
type AccountRepository interface {
	// Add persists a new account.
	// Returns an error when the phone number is already registered.
	Add(ctx context.Context, aggregate *account.Account) error

	// Get retrieves an account by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such account exists.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// GetByPhone retrieves an account by its phone number, the login
	// identifier. Returns errs.ObjectNotFoundError when no account uses it.
	GetByPhone(ctx context.Context, phone string) (*account.Account, error)
}
