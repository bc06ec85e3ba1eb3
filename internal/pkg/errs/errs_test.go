package errs_test

import (
	"errors"
	"testing"

	"livraison/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("deliveryId", "123")

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("deliveryId", "123", cause)

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: deliveryId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("assignee")

		assert.Equal(t, "assignee", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: assignee", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("assignee", cause)

		assert.Equal(t, "assignee", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: assignee (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestAlreadyTerminalError(t *testing.T) {
	err := errs.NewAlreadyTerminalError("Delivered")

	assert.Equal(t, "Delivered", err.Status)
	assert.Equal(t, "delivery is in a terminal status: Delivered", err.Error())
	assert.Equal(t, errs.ErrAlreadyTerminal, err.Unwrap())
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("Assigned", "Delivered")

	assert.Equal(t, "Assigned", err.From)
	assert.Equal(t, "Delivered", err.To)
	assert.Equal(t, "transition is not allowed: Assigned -> Delivered", err.Error())
	assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
}

func TestForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("requester", "Cancelled")

	assert.Equal(t, "requester", err.Role)
	assert.Equal(t, "Cancelled", err.Target)
	assert.Equal(t,
		"actor is not allowed to perform this transition: role is: requester, target status is: Cancelled",
		err.Error())
	assert.Equal(t, errs.ErrForbidden, err.Unwrap())
}

func TestInvalidAssigneeError(t *testing.T) {
	t.Run("NewInvalidAssigneeError", func(t *testing.T) {
		err := errs.NewInvalidAssigneeError("assignee is required for Assigned")

		require.NoError(t, err.Cause)
		assert.Equal(t, "assignee is invalid: assignee is required for Assigned", err.Error())
		assert.Equal(t, errs.ErrInvalidAssignee, err.Unwrap())
	})

	t.Run("NewInvalidAssigneeErrorWithCause", func(t *testing.T) {
		cause := errors.New("account has role requester")
		err := errs.NewInvalidAssigneeErrorWithCause("assignee must be a courier", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"assignee is invalid: assignee must be a courier (cause: account has role requester)",
			err.Error())
		assert.Equal(t, errs.ErrInvalidAssignee, err.Unwrap())
	})
}

func TestVersionConflictError(t *testing.T) {
	err := errs.NewVersionConflictError("delivery", "123", 7)

	assert.Equal(t, "delivery", err.ParamName)
	assert.Equal(t, "123", err.ID)
	assert.Equal(t, int64(7), err.Version)
	assert.Equal(t,
		"delivery was modified concurrently: param is: delivery, ID is: 123, expected version is: 7",
		err.Error())
	assert.Equal(t, errs.ErrVersionConflict, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "delivery is in a terminal status", errs.ErrAlreadyTerminal.Error())
		assert.Equal(t, "transition is not allowed", errs.ErrInvalidTransition.Error())
	})

	t.Run("sanitize removes newlines", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("first\nsecond")
		assert.Contains(t, err.Error(), "first second")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("deliveryId", "123"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("email"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsRequiredError("assignee"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewAlreadyTerminalError("Cancelled"), errs.ErrAlreadyTerminal)
	require.ErrorIs(t, errs.NewInvalidTransitionError("Pending", "Delivered"), errs.ErrInvalidTransition)
	require.ErrorIs(t, errs.NewForbiddenError("courier", "Assigned"), errs.ErrForbidden)
	require.ErrorIs(t, errs.NewInvalidAssigneeError("missing"), errs.ErrInvalidAssignee)
	require.ErrorIs(t, errs.NewVersionConflictError("delivery", "123", 1), errs.ErrVersionConflict)
}
