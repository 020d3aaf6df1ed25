package orderrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodorders/internal/adapters/out/postgres/orderrepo"
	"foodorders/internal/adapters/out/postgres/pgtest"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite runs OrderRepository against a real
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

var createdAt = time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)

func (suite *OrderRepositoryIntegrationTestSuite) newLine(quantity int, unitPrice string) *order.Line {
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), quantity, decimal.RequireFromString(unitPrice))
	suite.Require().NoError(err)
	return line
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(restaurantID kernel.UUID, lines ...*order.Line) *order.Order {
	if len(lines) == 0 {
		lines = []*order.Line{suite.newLine(2, "4.00"), suite.newLine(1, "2.50")}
	}
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), restaurantID,
		"Main St 1",
		lines,
		decimal.RequireFromString("3.00"),
		createdAt,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RestoresAggregate() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(o))
	suite.True(loaded.UserID().IsEqual(o.UserID()))
	suite.True(loaded.RestaurantID().IsEqual(o.RestaurantID()))
	suite.Equal("Main St 1", loaded.Address())
	suite.True(loaded.Price().Equal(decimal.RequireFromString("13.50")))
	suite.True(loaded.ShippingCosts().Equal(decimal.RequireFromString("3.00")))
	suite.True(loaded.CreatedAt().Equal(createdAt))
	suite.Equal(order.Pending, loaded.Status())
	suite.Empty(loaded.PullEvents(), "restored orders carry no events")

	suite.Require().Len(loaded.Lines(), 2)
	for i, line := range o.Lines() {
		suite.True(loaded.Lines()[i].ID().IsEqual(line.ID()), "line order is kept")
		suite.Equal(line.Quantity(), loaded.Lines()[i].Quantity())
		suite.True(loaded.Lines()[i].UnitPrice().Equal(line.UnitPrice()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_Fails() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, o))
	err := suite.repository.Add(ctx, o)
	suite.ErrorIs(err, errs.ErrAlreadyExists)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnconstructedOrder_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})
	suite.ErrorIs(err, order.ErrOrderIsNotConstructed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	var notFound *errs.ObjectNotFoundError
	suite.True(errors.As(err, &notFound))
	suite.Equal("orderId", notFound.ParamName)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTimestamps() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Confirm(createdAt.Add(10 * time.Minute)))
	suite.Require().NoError(o.Send(createdAt.Add(30 * time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Sent, loaded.Status())
	suite.True(loaded.SentAt().Equal(createdAt.Add(30 * time.Minute)))
	suite.Nil(loaded.DeliveredAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_LocksOrderUntilTransactionEnds() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	confirmTx := suite.database.DB.Begin()
	suite.Require().NoError(confirmTx.Error)
	defer confirmTx.Rollback()
	confirmRepo := orderrepo.NewGormOrderRepository(confirmTx, suite.tracker)

	confirming, err := confirmRepo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	type loaded struct {
		order *order.Order
		err   error
	}
	updateTx := suite.database.DB.Begin()
	suite.Require().NoError(updateTx.Error)
	defer updateTx.Rollback()
	updateRepo := orderrepo.NewGormOrderRepository(updateTx, suite.tracker)

	done := make(chan loaded, 1)
	go func() {
		updating, getErr := updateRepo.Get(ctx, o.ID())
		done <- loaded{order: updating, err: getErr}
	}()

	select {
	case <-done:
		suite.FailNow("second reader was not blocked by the row lock")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(confirming.Confirm(createdAt.Add(5 * time.Minute)))
	suite.Require().NoError(confirmRepo.Update(ctx, confirming))
	suite.Require().NoError(confirmTx.Commit().Error)

	var second loaded
	select {
	case second = <-done:
	case <-time.After(10 * time.Second):
		suite.FailNow("second reader never acquired the row lock")
	}
	suite.Require().NoError(second.err)
	suite.Equal(order.InProcess, second.order.Status(), "the waiting reader sees the committed confirmation")

	err = second.order.Revise("Side St 2", []*order.Line{suite.newLine(1, "5.00")}, decimal.Zero, createdAt.Add(6*time.Minute))
	suite.ErrorIs(err, errs.ErrInvalidState)
	suite.Require().NoError(updateTx.Rollback().Error)

	reloaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProcess, reloaded.Status())
	suite.True(reloaded.StartedAt().Equal(createdAt.Add(5 * time.Minute)))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_LockTimeout_IsTransient() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	holder := suite.database.DB.Begin()
	suite.Require().NoError(holder.Error)
	defer holder.Rollback()
	_, err := orderrepo.NewGormOrderRepository(holder, suite.tracker).Get(ctx, o.ID())
	suite.Require().NoError(err)

	waiter := suite.database.DB.Begin()
	suite.Require().NoError(waiter.Error)
	defer waiter.Rollback()
	suite.Require().NoError(waiter.Exec("SET LOCAL lock_timeout = '100ms'").Error)

	_, err = orderrepo.NewGormOrderRepository(waiter, suite.tracker).Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrTransient)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	o := suite.newOrder(kernel.NewUUID())

	err := suite.repository.Update(context.Background(), o)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestReplaceLines_SwapsWholeSet() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	replacement := suite.newLine(3, "5.00")
	suite.Require().NoError(o.Revise("Side St 2", []*order.Line{replacement}, decimal.Zero, createdAt.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Require().NoError(suite.repository.ReplaceLines(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("Side St 2", loaded.Address())
	suite.True(loaded.Price().Equal(decimal.RequireFromString("15.00")))
	suite.Require().Len(loaded.Lines(), 1)
	suite.True(loaded.Lines()[0].ID().IsEqual(replacement.ID()))

	var count int64
	suite.Require().NoError(suite.database.DB.Model(&orderrepo.LineDTO{}).Where("order_id = ?", o.ID().Bytes()).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRemove_DeletesOrderAndLines() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Remove(ctx, o))

	_, err := suite.repository.Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	var count int64
	suite.Require().NoError(suite.database.DB.Model(&orderrepo.LineDTO{}).Count(&count).Error)
	suite.Zero(count)

	suite.ErrorIs(suite.repository.Remove(ctx, o), errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestServiceTimes_OnlyDeliveredOrdersOfRestaurant() {
	ctx := context.Background()
	restaurantID := kernel.NewUUID()

	deliver := func(o *order.Order, after time.Duration) {
		suite.Require().NoError(o.Confirm(createdAt.Add(time.Minute)))
		suite.Require().NoError(o.Send(createdAt.Add(2 * time.Minute)))
		suite.Require().NoError(o.Deliver(createdAt.Add(after)))
	}

	fast := suite.newOrder(restaurantID)
	deliver(fast, 20*time.Minute)
	slow := suite.newOrder(restaurantID)
	deliver(slow, 40*time.Minute)
	pending := suite.newOrder(restaurantID)
	other := suite.newOrder(kernel.NewUUID())
	deliver(other, 90*time.Minute)

	for _, o := range []*order.Order{fast, slow, pending, other} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	durations, err := suite.repository.ServiceTimes(ctx, restaurantID)
	suite.Require().NoError(err)
	suite.ElementsMatch([]time.Duration{20 * time.Minute, 40 * time.Minute}, durations)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
