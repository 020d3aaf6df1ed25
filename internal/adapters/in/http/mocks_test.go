package http_test

import (
	"context"

	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockUpdateOrderHandler struct{ mock.Mock }

func (m *MockUpdateOrderHandler) Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockDestroyOrderHandler struct{ mock.Mock }

func (m *MockDestroyOrderHandler) Handle(ctx context.Context, cmd commands.DestroyOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockConfirmOrderHandler struct{ mock.Mock }

func (m *MockConfirmOrderHandler) Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockSendOrderHandler struct{ mock.Mock }

func (m *MockSendOrderHandler) Handle(ctx context.Context, cmd commands.SendOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockDeliverOrderHandler struct{ mock.Mock }

func (m *MockDeliverOrderHandler) Handle(ctx context.Context, cmd commands.DeliverOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockRecalculateServiceTimeHandler struct{ mock.Mock }

func (m *MockRecalculateServiceTimeHandler) Handle(
	ctx context.Context,
	cmd commands.RecalculateServiceTimeCommand,
) (*catalog.Restaurant, error) {
	args := m.Called(ctx, cmd)
	r, _ := args.Get(0).(*catalog.Restaurant)
	return r, args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).(queries.OrderView)
	return v, args.Error(1)
}

type MockGetCustomerOrdersHandler struct{ mock.Mock }

func (m *MockGetCustomerOrdersHandler) Handle(
	ctx context.Context,
	query queries.GetCustomerOrdersQuery,
) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).([]queries.OrderView)
	return v, args.Error(1)
}

type MockGetRestaurantOrdersHandler struct{ mock.Mock }

func (m *MockGetRestaurantOrdersHandler) Handle(
	ctx context.Context,
	query queries.GetRestaurantOrdersQuery,
) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).([]queries.OrderView)
	return v, args.Error(1)
}

type MockGetAnalyticsHandler struct{ mock.Mock }

func (m *MockGetAnalyticsHandler) Handle(
	ctx context.Context,
	query queries.GetAnalyticsQuery,
) (queries.GetAnalyticsQueryResponse, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).(queries.GetAnalyticsQueryResponse)
	return r, args.Error(1)
}
