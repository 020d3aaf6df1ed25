package commands_test

import (
	"context"
	"time"

	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) ReplaceLines(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Remove(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) ServiceTimes(ctx context.Context, restaurantID kernel.UUID) ([]time.Duration, error) {
	args := m.Called(ctx, restaurantID)
	durations, _ := args.Get(0).([]time.Duration)
	return durations, args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*catalog.Restaurant)
	return r, args.Error(1)
}

func (m *MockCatalogRepository) LockRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*catalog.Restaurant)
	return r, args.Error(1)
}

func (m *MockCatalogRepository) GetProduct(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*catalog.Product)
	return p, args.Error(1)
}

func (m *MockCatalogRepository) GetProducts(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).(map[kernel.UUID]*catalog.Product)
	return products, args.Error(1)
}

func (m *MockCatalogRepository) ListRestaurantIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

func (m *MockCatalogRepository) UpdateStatistics(ctx context.Context, r *catalog.Restaurant) error {
	return m.Called(ctx, r).Error(0)
}

// MockUoW satisfies both commands.UoW and commands.OrderUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	return m.Called().Get(0).(ports.CatalogRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Lookup(ctx context.Context, key string) (kernel.UUID, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(kernel.UUID), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Remember(ctx context.Context, key string, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, key, id)
	return args.Bool(0), args.Error(1)
}
