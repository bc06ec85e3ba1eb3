package services_test

import (
	"testing"

	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/core/domain/services"
	"livraison/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(t *testing.T, role account.Role) *account.Account {
	t.Helper()

	a, err := account.NewAccount(
		kernel.NewUUID(), "Test "+role.String(), role.String()+"@example.com",
		"+225070000"+role.String(), "$2a$10$hash", role,
	)
	require.NoError(t, err)
	return a
}

func newDeliveryFor(t *testing.T, requester *account.Account) *delivery.Delivery {
	t.Helper()

	d, err := delivery.NewDelivery(
		kernel.NewUUID(), delivery.PackageKindParcel, "",
		"12 Rue de la Paix", "3 Avenue Foch", 1500, requester.ID(),
	)
	require.NoError(t, err)
	return d
}

func TestTransitionEngine_Attempt_Assignment(t *testing.T) {
	engine := services.NewTransitionEngine()

	t.Run("dispatcher assigns a courier", func(t *testing.T) {
		requester := newAccount(t, account.RoleRequester)
		dispatcher := newAccount(t, account.RoleDispatcher)
		courier := newAccount(t, account.RoleCourier)
		d := newDeliveryFor(t, requester)

		err := engine.Attempt(d, delivery.StatusAssigned, dispatcher, courier)

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusAssigned, d.Status())
		require.NotNil(t, d.AssigneeID())
		assert.True(t, d.AssigneeID().IsEqual(courier.ID()))
	})

	t.Run("assignment without assignee is rejected", func(t *testing.T) {
		dispatcher := newAccount(t, account.RoleDispatcher)
		d := newDeliveryFor(t, newAccount(t, account.RoleRequester))

		err := engine.Attempt(d, delivery.StatusAssigned, dispatcher, nil)

		require.ErrorIs(t, err, errs.ErrInvalidAssignee)
		assert.Equal(t, delivery.StatusPending, d.Status())
	})

	t.Run("assignee with a non-courier role is rejected", func(t *testing.T) {
		dispatcher := newAccount(t, account.RoleDispatcher)
		d := newDeliveryFor(t, newAccount(t, account.RoleRequester))

		err := engine.Attempt(d, delivery.StatusAssigned, dispatcher, newAccount(t, account.RoleRequester))

		require.ErrorIs(t, err, errs.ErrInvalidAssignee)
		assert.Nil(t, d.AssigneeID())
	})

	t.Run("courier cannot assign even itself", func(t *testing.T) {
		courier := newAccount(t, account.RoleCourier)
		d := newDeliveryFor(t, newAccount(t, account.RoleRequester))

		err := engine.Attempt(d, delivery.StatusAssigned, courier, courier)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestTransitionEngine_Attempt_CourierProgress(t *testing.T) {
	engine := services.NewTransitionEngine()

	setup := func(t *testing.T) (*delivery.Delivery, *account.Account) {
		t.Helper()
		dispatcher := newAccount(t, account.RoleDispatcher)
		courier := newAccount(t, account.RoleCourier)
		d := newDeliveryFor(t, newAccount(t, account.RoleRequester))
		require.NoError(t, engine.Attempt(d, delivery.StatusAssigned, dispatcher, courier))
		return d, courier
	}

	t.Run("assigned courier walks the lifecycle to Delivered", func(t *testing.T) {
		d, courier := setup(t)

		for _, target := range []delivery.Status{
			delivery.StatusEnRouteToPickup,
			delivery.StatusAtPickup,
			delivery.StatusPickedUp,
			delivery.StatusEnRouteToDropoff,
			delivery.StatusDelivered,
		} {
			require.NoError(t, engine.Attempt(d, target, courier, nil), target.String())
		}

		assert.Equal(t, delivery.StatusDelivered, d.Status())
	})

	t.Run("a different courier is unrelated and forbidden", func(t *testing.T) {
		d, _ := setup(t)
		other := newAccount(t, account.RoleCourier)

		err := engine.Attempt(d, delivery.StatusEnRouteToPickup, other, nil)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("courier may self-cancel after pickup", func(t *testing.T) {
		d, courier := setup(t)
		require.NoError(t, engine.Attempt(d, delivery.StatusEnRouteToPickup, courier, nil))
		require.NoError(t, engine.Attempt(d, delivery.StatusAtPickup, courier, nil))
		require.NoError(t, engine.Attempt(d, delivery.StatusPickedUp, courier, nil))

		err := engine.Attempt(d, delivery.StatusCancelled, courier, nil)

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusCancelled, d.Status())
		assert.NotNil(t, d.AssigneeID())
	})
}

func TestTransitionEngine_Attempt_RequesterCancellation(t *testing.T) {
	engine := services.NewTransitionEngine()

	t.Run("requester cancels while Pending", func(t *testing.T) {
		requester := newAccount(t, account.RoleRequester)
		d := newDeliveryFor(t, requester)

		err := engine.Attempt(d, delivery.StatusCancelled, requester, nil)

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusCancelled, d.Status())
	})

	t.Run("requester cancelling after assignment gets Forbidden, not InvalidTransition", func(t *testing.T) {
		requester := newAccount(t, account.RoleRequester)
		dispatcher := newAccount(t, account.RoleDispatcher)
		courier := newAccount(t, account.RoleCourier)
		d := newDeliveryFor(t, requester)
		require.NoError(t, engine.Attempt(d, delivery.StatusAssigned, dispatcher, courier))

		err := engine.Attempt(d, delivery.StatusCancelled, requester, nil)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.NotErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("a requester that does not own the delivery is unrelated", func(t *testing.T) {
		d := newDeliveryFor(t, newAccount(t, account.RoleRequester))
		stranger := newAccount(t, account.RoleRequester)

		err := engine.Attempt(d, delivery.StatusCancelled, stranger, nil)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("requester may not advance the lifecycle", func(t *testing.T) {
		requester := newAccount(t, account.RoleRequester)
		d := newDeliveryFor(t, requester)

		err := engine.Attempt(d, delivery.StatusAssigned, requester, newAccount(t, account.RoleCourier))

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestTransitionEngine_Attempt_GuardOrder(t *testing.T) {
	engine := services.NewTransitionEngine()

	t.Run("terminal guard fires before authorization", func(t *testing.T) {
		requester := newAccount(t, account.RoleRequester)
		d := newDeliveryFor(t, requester)
		require.NoError(t, engine.Attempt(d, delivery.StatusCancelled, requester, nil))

		// The stranger would get Forbidden, but the terminal guard runs first.
		err := engine.Attempt(d, delivery.StatusCancelled, newAccount(t, account.RoleRequester), nil)

		require.ErrorIs(t, err, errs.ErrAlreadyTerminal)
	})

	t.Run("adjacency guard fires before authorization", func(t *testing.T) {
		d := newDeliveryFor(t, newAccount(t, account.RoleRequester))
		stranger := newAccount(t, account.RoleCourier)

		err := engine.Attempt(d, delivery.StatusDelivered, stranger, nil)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("dispatcher cancels from any non-terminal status", func(t *testing.T) {
		dispatcher := newAccount(t, account.RoleDispatcher)
		courier := newAccount(t, account.RoleCourier)
		d := newDeliveryFor(t, newAccount(t, account.RoleRequester))
		require.NoError(t, engine.Attempt(d, delivery.StatusAssigned, dispatcher, courier))
		require.NoError(t, engine.Attempt(d, delivery.StatusEnRouteToPickup, dispatcher, nil))

		err := engine.Attempt(d, delivery.StatusCancelled, dispatcher, nil)

		require.NoError(t, err)
	})

	t.Run("admin has dispatcher permissions", func(t *testing.T) {
		admin := newAccount(t, account.RoleAdmin)
		courier := newAccount(t, account.RoleCourier)
		d := newDeliveryFor(t, newAccount(t, account.RoleRequester))

		require.NoError(t, engine.Attempt(d, delivery.StatusAssigned, admin, courier))
	})
}

// TestTransitionEngine_DeliveryScenario walks the documented end-to-end flow:
// create → dispatcher assigns → illegal Delivered jump → EnRouteToPickup →
// requester cancel rejected.
func TestTransitionEngine_DeliveryScenario(t *testing.T) {
	engine := services.NewTransitionEngine()
	requester := newAccount(t, account.RoleRequester)
	dispatcher := newAccount(t, account.RoleDispatcher)
	courier := newAccount(t, account.RoleCourier)

	d := newDeliveryFor(t, requester)
	require.Equal(t, delivery.StatusPending, d.Status())

	require.NoError(t, engine.Attempt(d, delivery.StatusAssigned, dispatcher, courier))
	require.Equal(t, delivery.StatusAssigned, d.Status())

	err := engine.Attempt(d, delivery.StatusDelivered, courier, nil)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	require.NoError(t, engine.Attempt(d, delivery.StatusEnRouteToPickup, courier, nil))

	err = engine.Attempt(d, delivery.StatusCancelled, requester, nil)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestRelationshipOf(t *testing.T) {
	requester := newAccount(t, account.RoleRequester)
	courier := newAccount(t, account.RoleCourier)
	dispatcher := newAccount(t, account.RoleDispatcher)
	d := newDeliveryFor(t, requester)

	assert.Equal(t, services.RequesterOf, services.RelationshipOf(requester, d))
	assert.Equal(t, services.Privileged, services.RelationshipOf(dispatcher, d))
	assert.Equal(t, services.Unrelated, services.RelationshipOf(courier, d))

	require.NoError(t, d.Assign(courier.ID()))
	assert.Equal(t, services.AssigneeOf, services.RelationshipOf(courier, d))
}
