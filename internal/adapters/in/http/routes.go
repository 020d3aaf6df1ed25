package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type CreateOrderParams struct {
	XUserID        openapi_types.UUID
	IdempotencyKey *string
}

type GetCustomerOrdersParams struct {
	XUserID openapi_types.UUID
}

type GetRestaurantOrdersParams struct {
	Status *string
	From   *openapi_types.Date
	To     *openapi_types.Date
}

// ServerInterface lists one method per operation of openapi.yaml.
type ServerInterface interface {
	// (POST /orders)
	CreateOrder(ctx echo.Context, params CreateOrderParams) error
	// (GET /orders)
	GetCustomerOrders(ctx echo.Context, params GetCustomerOrdersParams) error
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (PUT /orders/{orderId})
	UpdateOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (DELETE /orders/{orderId})
	DestroyOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (PATCH /orders/{orderId}/confirm)
	ConfirmOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (PATCH /orders/{orderId}/send)
	SendOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (PATCH /orders/{orderId}/deliver)
	DeliverOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (GET /restaurants/{restaurantId}/orders)
	GetRestaurantOrders(ctx echo.Context, restaurantID openapi_types.UUID, params GetRestaurantOrdersParams) error
	// (GET /restaurants/{restaurantId}/analytics)
	GetAnalytics(ctx echo.Context, restaurantID openapi_types.UUID) error
	// (POST /restaurants/{restaurantId}/service-time)
	RecalculateServiceTime(ctx echo.Context, restaurantID openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var params CreateOrderParams

	userID, err := bindUserID(ctx)
	if err != nil {
		return err
	}
	params.XUserID = userID

	if key := ctx.Request().Header.Get("Idempotency-Key"); key != "" {
		params.IdempotencyKey = &key
	}

	return w.Handler.CreateOrder(ctx, params)
}

func (w *ServerInterfaceWrapper) GetCustomerOrders(ctx echo.Context) error {
	userID, err := bindUserID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetCustomerOrders(ctx, GetCustomerOrdersParams{XUserID: userID})
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) DestroyOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.DestroyOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ConfirmOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ConfirmOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) SendOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.SendOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) DeliverOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.DeliverOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) GetRestaurantOrders(ctx echo.Context) error {
	restaurantID, err := bindPathUUID(ctx, "restaurantId")
	if err != nil {
		return err
	}

	var params GetRestaurantOrdersParams
	if err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	if err = runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}
	if err = runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}

	return w.Handler.GetRestaurantOrders(ctx, restaurantID, params)
}

func (w *ServerInterfaceWrapper) GetAnalytics(ctx echo.Context) error {
	restaurantID, err := bindPathUUID(ctx, "restaurantId")
	if err != nil {
		return err
	}
	return w.Handler.GetAnalytics(ctx, restaurantID)
}

func (w *ServerInterfaceWrapper) RecalculateServiceTime(ctx echo.Context) error {
	restaurantID, err := bindPathUUID(ctx, "restaurantId")
	if err != nil {
		return err
	}
	return w.Handler.RecalculateServiceTime(ctx, restaurantID)
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindUserID(ctx echo.Context) (openapi_types.UUID, error) {
	var userID openapi_types.UUID

	headers := ctx.Request().Header
	valueList, found := headers[http.CanonicalHeaderKey("X-User-Id")]
	if !found {
		return userID, echo.NewHTTPError(http.StatusBadRequest, "Header parameter X-User-Id is required, but not found")
	}
	if n := len(valueList); n != 1 {
		return userID, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-User-Id, got %d", n))
	}

	err := runtime.BindStyledParameterWithOptions("simple", "X-User-Id", valueList[0], &userID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return userID, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-User-Id: %s", err))
	}
	return userID, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every route of openapi.yaml to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST("/orders", wrapper.CreateOrder)
	router.GET("/orders", wrapper.GetCustomerOrders)
	router.GET("/orders/:orderId", wrapper.GetOrder)
	router.PUT("/orders/:orderId", wrapper.UpdateOrder)
	router.DELETE("/orders/:orderId", wrapper.DestroyOrder)
	router.PATCH("/orders/:orderId/confirm", wrapper.ConfirmOrder)
	router.PATCH("/orders/:orderId/send", wrapper.SendOrder)
	router.PATCH("/orders/:orderId/deliver", wrapper.DeliverOrder)
	router.GET("/restaurants/:restaurantId/orders", wrapper.GetRestaurantOrders)
	router.GET("/restaurants/:restaurantId/analytics", wrapper.GetAnalytics)
	router.POST("/restaurants/:restaurantId/service-time", wrapper.RecalculateServiceTime)
}
