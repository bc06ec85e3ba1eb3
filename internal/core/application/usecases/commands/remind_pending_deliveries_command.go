package commands

import (
	"errors"
	"time"

	"livraison/internal/pkg/errs"
	"livraison/internal/pkg/guard"
)

var ErrRemindPendingDeliveriesCommandIsNotConstructed = errors.New(
	"RemindPendingDeliveriesCommand must be created via NewRemindPendingDeliveriesCommand constructor",
)

// RemindPendingDeliveriesCommand asks for reminder notifications about
// deliveries that have sat in Pending longer than the configured age.
type RemindPendingDeliveriesCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewRemindPendingDeliveriesCommand creates a reminder command.
// olderThan is how long a delivery may stay Pending before it is reported;
// it must be positive.
func NewRemindPendingDeliveriesCommand(olderThan time.Duration) (RemindPendingDeliveriesCommand, error) {
	remindCommand := RemindPendingDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := remindCommand.setOlderThan(olderThan); err != nil {
		return RemindPendingDeliveriesCommand{}, err
	}

	return remindCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemindPendingDeliveriesCommandIsNotConstructed if validation fails.
func (c RemindPendingDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrRemindPendingDeliveriesCommandIsNotConstructed)
}

// OlderThan returns the minimum Pending age before a reminder fires.
func (c RemindPendingDeliveriesCommand) OlderThan() time.Duration {
	return c.olderThan
}

func (c *RemindPendingDeliveriesCommand) setOlderThan(olderThan time.Duration) error {
	if olderThan <= 0 {
		return errs.NewValueIsInvalidError("olderThan")
	}

	c.olderThan = olderThan
	return nil
}
