package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case contracts consumed by the server. The application handlers
// satisfy them through pointer receivers for commands and values for
// queries.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	DestroyOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DestroyOrderCommand) error
	}
	ConfirmOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) (*order.Order, error)
	}
	SendOrderHandler interface {
		Handle(ctx context.Context, cmd commands.SendOrderCommand) (*order.Order, error)
	}
	DeliverOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeliverOrderCommand) (*order.Order, error)
	}
	RecalculateServiceTimeHandler interface {
		Handle(ctx context.Context, cmd commands.RecalculateServiceTimeCommand) (*catalog.Restaurant, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	GetCustomerOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetCustomerOrdersQuery) ([]queries.OrderView, error)
	}
	GetRestaurantOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetRestaurantOrdersQuery) ([]queries.OrderView, error)
	}
	GetAnalyticsHandler interface {
		Handle(ctx context.Context, query queries.GetAnalyticsQuery) (queries.GetAnalyticsQueryResponse, error)
	}
)

// Handlers groups the use cases behind the HTTP API.
type Handlers struct {
	// Command handlers
	CreateOrder            CreateOrderHandler
	UpdateOrder            UpdateOrderHandler
	DestroyOrder           DestroyOrderHandler
	ConfirmOrder           ConfirmOrderHandler
	SendOrder              SendOrderHandler
	DeliverOrder           DeliverOrderHandler
	RecalculateServiceTime RecalculateServiceTimeHandler

	// Query handlers
	GetOrder            GetOrderHandler
	GetCustomerOrders   GetCustomerOrdersHandler
	GetRestaurantOrders GetRestaurantOrdersHandler
	GetAnalytics        GetAnalyticsHandler
}

// Server implements ServerInterface. It turns requests into commands and
// queries and renders results or errors as JSON.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{handlers: handlers, logger: logger.With("component", "http_server")}
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context, params CreateOrderParams) error {
	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return s.respondError(ctx, badRequest("invalid request body", err))
	}

	userID, err := toKernelUUID(params.XUserID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid X-User-Id", err))
	}
	restaurantID, err := optionalUUID(body.RestaurantID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid restaurantId", err))
	}
	lines, err := lineRequests(body.Products)
	if err != nil {
		return s.respondError(ctx, err)
	}

	idempotencyKey := ""
	if params.IdempotencyKey != nil {
		idempotencyKey = *params.IdempotencyKey
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), userID, restaurantID, body.Address, lines, idempotencyKey)
	if err != nil {
		return s.respondError(ctx, err)
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderLocation, "/orders/"+created.ID().String())
	return ctx.JSON(http.StatusCreated, orderFromDomain(created))
}

// GetCustomerOrders handles GET /orders.
func (s *Server) GetCustomerOrders(ctx echo.Context, params GetCustomerOrdersParams) error {
	userID, err := toKernelUUID(params.XUserID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid X-User-Id", err))
	}

	query, err := queries.NewGetCustomerOrdersQuery(userID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	views, err := s.handlers.GetCustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ordersFromViews(views))
}

// GetOrder handles GET /orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernelUUID(orderID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid orderId", err))
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromView(view))
}

// UpdateOrder handles PUT /orders/{orderId}.
func (s *Server) UpdateOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernelUUID(orderID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid orderId", err))
	}

	var body UpdateOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return s.respondError(ctx, badRequest("invalid request body", err))
	}
	lines, err := lineRequests(body.Products)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(id, body.Address, lines, body.RestaurantID != nil)
	if err != nil {
		return s.respondError(ctx, err)
	}

	updated, err := s.handlers.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

// DestroyOrder handles DELETE /orders/{orderId}.
func (s *Server) DestroyOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernelUUID(orderID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid orderId", err))
	}

	cmd, err := commands.NewDestroyOrderCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.handlers.DestroyOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmOrder handles PATCH /orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernelUUID(orderID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid orderId", err))
	}

	cmd, err := commands.NewConfirmOrderCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	confirmed, err := s.handlers.ConfirmOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(confirmed))
}

// SendOrder handles PATCH /orders/{orderId}/send.
func (s *Server) SendOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernelUUID(orderID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid orderId", err))
	}

	cmd, err := commands.NewSendOrderCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	sent, err := s.handlers.SendOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(sent))
}

// DeliverOrder handles PATCH /orders/{orderId}/deliver. A failure to refresh
// the restaurant statistic is reported even though the delivery itself may
// already be stored; POST /restaurants/{restaurantId}/service-time repairs
// it.
func (s *Server) DeliverOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernelUUID(orderID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid orderId", err))
	}

	cmd, err := commands.NewDeliverOrderCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	delivered, err := s.handlers.DeliverOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(delivered))
}

// GetRestaurantOrders handles GET /restaurants/{restaurantId}/orders.
func (s *Server) GetRestaurantOrders(
	ctx echo.Context,
	restaurantID openapi_types.UUID,
	params GetRestaurantOrdersParams,
) error {
	id, err := toKernelUUID(restaurantID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid restaurantId", err))
	}

	status := ""
	if params.Status != nil {
		status = *params.Status
	}

	query, err := queries.NewGetRestaurantOrdersQuery(id, status, dateOrNil(params.From), dateOrNil(params.To))
	if err != nil {
		return s.respondError(ctx, err)
	}

	views, err := s.handlers.GetRestaurantOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ordersFromViews(views))
}

// GetAnalytics handles GET /restaurants/{restaurantId}/analytics.
func (s *Server) GetAnalytics(ctx echo.Context, restaurantID openapi_types.UUID) error {
	id, err := toKernelUUID(restaurantID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid restaurantId", err))
	}

	query, err := queries.NewGetAnalyticsQuery(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.handlers.GetAnalytics.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, analyticsFromResponse(result))
}

// RecalculateServiceTime handles POST /restaurants/{restaurantId}/service-time.
func (s *Server) RecalculateServiceTime(ctx echo.Context, restaurantID openapi_types.UUID) error {
	id, err := toKernelUUID(restaurantID)
	if err != nil {
		return s.respondError(ctx, badRequest("invalid restaurantId", err))
	}

	cmd, err := commands.NewRecalculateServiceTimeCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	restaurant, err := s.handlers.RecalculateServiceTime.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, serviceTimeFromDomain(restaurant))
}

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// optionalUUID maps an absent value to the zero UUID, which the validator
// reports as a missing field.
func optionalUUID(value *string) (kernel.UUID, error) {
	if value == nil || *value == "" {
		return kernel.UUID{}, nil
	}
	return kernel.UUIDFromString(*value)
}

func lineRequests(products []OrderLineRequest) ([]services.LineRequest, error) {
	lines := make([]services.LineRequest, 0, len(products))
	for _, p := range products {
		productID, err := optionalUUID(p.ProductID)
		if err != nil {
			return nil, badRequest("invalid productId", err)
		}
		quantity := 0
		if p.Quantity != nil {
			quantity = *p.Quantity
		}
		lines = append(lines, services.LineRequest{ProductID: productID, Quantity: quantity})
	}
	return lines, nil
}

func dateOrNil(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
