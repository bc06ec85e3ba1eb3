package deliveryrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"livraison/internal/adapters/out/postgres/deliveryrepo"
	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite verifies delivery persistence,
// including the optimistic concurrency check, against a real PostgreSQL.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&deliveryrepo.DeliveryDTO{}))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_ValidDelivery_Success() {
	ctx := context.Background()
	aggregate := suite.createTestDelivery()

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	suite.assertDeliveryCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_ExistingDelivery_RoundTrips() {
	ctx := context.Background()
	aggregate := suite.createTestDelivery()

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(aggregate.ID(), retrieved.ID())
	suite.Equal(delivery.PackageKindParcel, retrieved.Kind())
	suite.Equal("fragile", retrieved.Description())
	suite.Equal("12 Rue de la Paix", retrieved.PickupAddress())
	suite.Equal("3 Avenue Foch", retrieved.DropoffAddress())
	suite.Equal(delivery.StatusPending, retrieved.Status())
	suite.Equal(1500, retrieved.Price())
	suite.Equal(aggregate.RequesterID(), retrieved.RequesterID())
	suite.Nil(retrieved.AssigneeID())
	suite.Equal(int64(1), retrieved.Version())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NonExistentDelivery_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	aggregate := suite.createTestDelivery()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.Assign(courierID))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	// The in-memory aggregate advances with the stored row.
	suite.Equal(int64(2), aggregate.Version())

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.StatusAssigned, retrieved.Status())
	suite.Require().NotNil(retrieved.AssigneeID())
	suite.True(retrieved.AssigneeID().IsEqual(courierID))
	suite.Equal(int64(2), retrieved.Version())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionConflict() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	aggregate := suite.createTestDelivery()
	suite.tracker.On("TrackAggregate", aggregate.ID(), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// Two actors load the same delivery at version 1.
	first, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	// The first transition commits and bumps the stored version to 2.
	suite.Require().NoError(first.Assign(courierID))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// The second write still carries version 1 and must lose.
	suite.Require().NoError(second.Assign(kernel.NewUUID()))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionConflict)

	// The winner's state is intact.
	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.AssigneeID().IsEqual(courierID))
	suite.Equal(int64(2), retrieved.Version())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_ConcurrentTransitions_ExactlyOneWins() {
	ctx := context.Background()

	aggregate := suite.createTestDelivery()
	// Add tracks once; only the winning Update tracks again.
	suite.tracker.On("TrackAggregate", aggregate.ID(), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	first, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Assign(kernel.NewUUID()))
	suite.Require().NoError(second.Assign(kernel.NewUUID()))

	// Both writes race from separate goroutines, each carrying version 1.
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, contender := range []*delivery.Delivery{first, second} {
		wg.Add(1)
		go func(d *delivery.Delivery) {
			defer wg.Done()
			results <- suite.repository.Update(ctx, d)
		}(contender)
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for updateErr := range results {
		switch {
		case updateErr == nil:
			successes++
		case errors.Is(updateErr, errs.ErrVersionConflict):
			conflicts++
		default:
			suite.Require().NoError(updateErr)
		}
	}
	suite.Equal(1, successes)
	suite.Equal(1, conflicts)

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.StatusAssigned, retrieved.Status())
	suite.Equal(int64(2), retrieved.Version())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_NonExistentDelivery_ReturnsVersionConflict() {
	ctx := context.Background()

	aggregate := suite.createTestDelivery()
	err := suite.repository.Update(ctx, aggregate)

	suite.Require().ErrorIs(err, errs.ErrVersionConflict)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetAllPendingOlderThan() {
	ctx := context.Background()

	stale := suite.createTestDelivery()
	fresh := suite.createTestDelivery()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, stale))
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	// Age the first row past the cutoff.
	err := suite.db.Exec(
		"UPDATE deliveries SET created_at = ? WHERE id = ?",
		time.Now().UTC().Add(-time.Hour), stale.ID().Bytes(),
	).Error
	suite.Require().NoError(err)

	pending, err := suite.repository.GetAllPendingOlderThan(ctx, time.Now().UTC().Add(-30*time.Minute))
	suite.Require().NoError(err)

	suite.Require().Len(pending, 1)
	suite.Equal(stale.ID(), pending[0].ID())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) createTestDelivery() *delivery.Delivery {
	aggregate, err := delivery.NewDelivery(
		kernel.NewUUID(), delivery.PackageKindParcel, "fragile",
		"12 Rue de la Paix", "3 Avenue Foch", 1500, kernel.NewUUID(),
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *DeliveryRepositoryIntegrationTestSuite) assertDeliveryCount(expected int) {
	var count int64
	err := suite.db.Model(&deliveryrepo.DeliveryDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
