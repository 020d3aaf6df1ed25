package http

import (
	"time"

	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Money is always rendered with two decimals.
const moneyPlaces = 2

type OrderLineRequest struct {
	ProductID *string `json:"productId"`
	Quantity  *int    `json:"quantity"`
}

type CreateOrderRequest struct {
	RestaurantID *string            `json:"restaurantId"`
	Address      string             `json:"address"`
	Products     []OrderLineRequest `json:"products"`
}

type UpdateOrderRequest struct {
	RestaurantID *string            `json:"restaurantId"`
	Address      string             `json:"address"`
	Products     []OrderLineRequest `json:"products"`
}

type OrderLine struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
}

type Order struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	RestaurantID   string      `json:"restaurantId"`
	RestaurantName string      `json:"restaurantName,omitempty"`
	Address        string      `json:"address"`
	ShippingCosts  string      `json:"shippingCosts"`
	Price          string      `json:"price"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	StartedAt      *time.Time  `json:"startedAt,omitempty"`
	SentAt         *time.Time  `json:"sentAt,omitempty"`
	DeliveredAt    *time.Time  `json:"deliveredAt,omitempty"`
	Lines          []OrderLine `json:"lines"`
}

type Analytics struct {
	RestaurantID    string `json:"restaurantId"`
	OrdersYesterday int64  `json:"ordersYesterday"`
	PendingOrders   int64  `json:"pendingOrders"`
	DeliveredToday  int64  `json:"deliveredToday"`
	InvoicedToday   string `json:"invoicedToday"`
}

type ServiceTime struct {
	RestaurantID          string   `json:"restaurantId"`
	AverageServiceMinutes *float64 `json:"averageServiceMinutes"`
}

type Fault struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Faults  []Fault `json:"faults,omitempty"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(moneyPlaces)
}

func orderFromDomain(o *order.Order) Order {
	lines := make([]OrderLine, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, OrderLine{
			ProductID: l.ProductID().String(),
			Quantity:  l.Quantity(),
			UnitPrice: money(l.UnitPrice()),
		})
	}

	return Order{
		ID:            o.ID().String(),
		UserID:        o.UserID().String(),
		RestaurantID:  o.RestaurantID().String(),
		Address:       o.Address(),
		ShippingCosts: money(o.ShippingCosts()),
		Price:         money(o.Price()),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		StartedAt:     o.StartedAt(),
		SentAt:        o.SentAt(),
		DeliveredAt:   o.DeliveredAt(),
		Lines:         lines,
	}
}

func orderFromView(v queries.OrderView) Order {
	lines := make([]OrderLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, OrderLine{
			ProductID:   l.ProductID.String(),
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   money(l.UnitPrice),
		})
	}

	return Order{
		ID:             v.ID.String(),
		UserID:         v.UserID.String(),
		RestaurantID:   v.RestaurantID.String(),
		RestaurantName: v.RestaurantName,
		Address:        v.Address,
		ShippingCosts:  money(v.ShippingCosts),
		Price:          money(v.Price),
		Status:         v.Status.String(),
		CreatedAt:      v.CreatedAt,
		StartedAt:      v.StartedAt,
		SentAt:         v.SentAt,
		DeliveredAt:    v.DeliveredAt,
		Lines:          lines,
	}
}

func ordersFromViews(views []queries.OrderView) []Order {
	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = orderFromView(v)
	}
	return response
}

func analyticsFromResponse(r queries.GetAnalyticsQueryResponse) Analytics {
	return Analytics{
		RestaurantID:    r.RestaurantID.String(),
		OrdersYesterday: r.OrdersYesterday,
		PendingOrders:   r.PendingOrders,
		DeliveredToday:  r.DeliveredToday,
		InvoicedToday:   money(r.InvoicedToday),
	}
}

func serviceTimeFromDomain(r *catalog.Restaurant) ServiceTime {
	return ServiceTime{
		RestaurantID:          r.ID().String(),
		AverageServiceMinutes: r.AverageServiceMinutes(),
	}
}
