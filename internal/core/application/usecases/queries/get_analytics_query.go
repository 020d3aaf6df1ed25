package queries

import (
	"context"
	"errors"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetAnalyticsQueryIsNotConstructed = errors.New("GetAnalyticsQuery must be created via NewGetAnalyticsQuery constructor")

type GetAnalyticsQuery struct {
	restaurantID kernel.UUID
	guard        guard.ConstructorGuard
}

func NewGetAnalyticsQuery(restaurantID kernel.UUID) (GetAnalyticsQuery, error) {
	if restaurantID.IsZero() {
		return GetAnalyticsQuery{}, errs.NewValueIsRequiredError("restaurantId")
	}
	return GetAnalyticsQuery{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAnalyticsQuery) RestaurantID() kernel.UUID { return q.restaurantID }

func (q GetAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetAnalyticsQueryIsNotConstructed)
}

// GetAnalyticsQueryResponse holds the day figures of one restaurant.
//
// InvoicedToday sums the price of orders created today, whatever their
// status.
type GetAnalyticsQueryResponse struct {
	RestaurantID    kernel.UUID
	OrdersYesterday int64
	PendingOrders   int64
	DeliveredToday  int64
	InvoicedToday   decimal.Decimal
}

type GetAnalyticsQueryHandler struct {
	db       *gorm.DB
	clock    ports.Clock
	location *time.Location
}

// NewGetAnalyticsQueryHandler creates the handler. Days start at midnight in
// loc; nil means time.Local.
func NewGetAnalyticsQueryHandler(db *gorm.DB, clock ports.Clock, loc *time.Location) GetAnalyticsQueryHandler {
	if loc == nil {
		loc = time.Local
	}
	return GetAnalyticsQueryHandler{db: db, clock: clock, location: loc}
}

func (h GetAnalyticsQueryHandler) Handle(ctx context.Context, query GetAnalyticsQuery) (GetAnalyticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}
	if err := ensureRestaurantExists(ctx, h.db, query.restaurantID); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}

	now := h.clock.Now().In(h.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.location)
	yesterday := today.AddDate(0, 0, -1)

	response := GetAnalyticsQueryResponse{RestaurantID: query.restaurantID}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE created_at >= @yesterday AND created_at < @today),
			COUNT(*) FILTER (WHERE started_at IS NULL),
			COUNT(*) FILTER (WHERE delivered_at >= @today),
			COALESCE(SUM(price) FILTER (WHERE created_at >= @today), 0)
		FROM orders
		WHERE restaurant_id = @restaurant
	`, map[string]any{
		"yesterday":  yesterday,
		"today":      today,
		"restaurant": query.restaurantID.Bytes(),
	}).Row().Scan(
		&response.OrdersYesterday,
		&response.PendingOrders,
		&response.DeliveredToday,
		&response.InvoicedToday,
	)
	if err != nil {
		return GetAnalyticsQueryResponse{}, err
	}
	return response, nil
}
