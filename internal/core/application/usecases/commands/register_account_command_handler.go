package commands

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"livraison/internal/core/domain/model/account"
	"livraison/internal/pkg/errs"
)

var ErrPhoneAlreadyRegistered = errors.New("phone number is already registered")

// RegisterAccountCommandHandler handles account registration.
// Hashes the password with bcrypt and rejects duplicate phone numbers, since
// the phone number is the login identifier.
type RegisterAccountCommandHandler struct {
	uowFactory AccountUoWFactory
}

// NewRegisterAccountCommandHandler creates a handler for account registration.
func NewRegisterAccountCommandHandler(uowFactory AccountUoWFactory) RegisterAccountCommandHandler {
	return RegisterAccountCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command.
// The duplicate check and the insert run in the same transaction; the unique
// index on phone remains the backstop for a racing registration.
func (h RegisterAccountCommandHandler) Handle(ctx context.Context, cmd RegisterAccountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password()), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()

	_, err = accountRepo.GetByPhone(ctx, cmd.Phone())
	if err == nil {
		return ErrPhoneAlreadyRegistered
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	aggregate, err := account.NewAccount(
		cmd.AccountID(),
		cmd.Name(),
		cmd.Email(),
		cmd.Phone(),
		string(hash),
		cmd.Role(),
	)
	if err != nil {
		return err
	}

	if err = accountRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
