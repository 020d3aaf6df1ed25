package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodorders/internal/core/application/validation"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrGetRestaurantOrdersQueryIsNotConstructed = errors.New(
		"GetRestaurantOrdersQuery must be created via NewGetRestaurantOrdersQuery constructor",
	)
	ErrDateRangeIsInverted = errors.New("from is after to")
)

// GetRestaurantOrdersQuery lists a restaurant's orders, optionally narrowed
// to one status and to a range of creation dates.
//
// from and to are calendar dates. Only their year, month and day are used;
// both ends are inclusive and are interpreted in the handler's time zone.
type GetRestaurantOrdersQuery struct {
	restaurantID kernel.UUID
	status       order.Status
	from         *time.Time
	to           *time.Time
	guard        guard.ConstructorGuard
}

// NewGetRestaurantOrdersQuery builds the query. An empty status means any.
// An unknown status or a from date after the to date is reported as an
// *errs.ValidationError.
func NewGetRestaurantOrdersQuery(
	restaurantID kernel.UUID,
	status string,
	from, to *time.Time,
) (GetRestaurantOrdersQuery, error) {
	q := GetRestaurantOrdersQuery{restaurantID: restaurantID, from: from, to: to}

	err := validation.Validate(
		validation.Rule{Field: "restaurantId", Check: func() error {
			if restaurantID.IsZero() {
				return errs.NewValueIsRequiredError("restaurantId")
			}
			return nil
		}},
		validation.Rule{Field: "status", Check: func() error {
			if strings.TrimSpace(status) == "" {
				return nil
			}
			parsed, parseErr := order.ParseStatus(status)
			q.status = parsed
			return parseErr
		}},
		validation.Rule{Field: "to", Check: func() error {
			if from != nil && to != nil && dateOf(*from).After(dateOf(*to)) {
				return errs.NewValueIsInvalidErrorWithCause("to",
					fmt.Errorf("%w: %s > %s", ErrDateRangeIsInverted, from.Format(time.DateOnly), to.Format(time.DateOnly)))
			}
			return nil
		}},
	)
	if err != nil {
		return GetRestaurantOrdersQuery{}, err
	}

	q.guard = guard.NewConstructorGuard()
	return q, nil
}

func (q GetRestaurantOrdersQuery) RestaurantID() kernel.UUID { return q.restaurantID }

// Status returns order.Unknown when no status filter was given.
func (q GetRestaurantOrdersQuery) Status() order.Status { return q.status }

func (q GetRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantOrdersQueryIsNotConstructed)
}

type GetRestaurantOrdersQueryHandler struct {
	db       *gorm.DB
	location *time.Location
}

// NewGetRestaurantOrdersQueryHandler creates the handler. Date filters are
// turned into instants in loc; nil means time.Local.
func NewGetRestaurantOrdersQueryHandler(db *gorm.DB, loc *time.Location) GetRestaurantOrdersQueryHandler {
	if loc == nil {
		loc = time.Local
	}
	return GetRestaurantOrdersQueryHandler{db: db, location: loc}
}

// Handle returns matching orders, newest first. An unknown restaurant yields
// an *errs.ObjectNotFoundError.
func (h GetRestaurantOrdersQueryHandler) Handle(ctx context.Context, query GetRestaurantOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := ensureRestaurantExists(ctx, h.db, query.restaurantID); err != nil {
		return nil, err
	}

	stmt := ordersSelect(ctx, h.db).Where("o.restaurant_id = ?", query.restaurantID.Bytes())
	if query.status != order.Unknown {
		stmt = stmt.Where(statusCondition(query.status))
	}
	if query.from != nil {
		stmt = stmt.Where("o.created_at >= ?", h.startOfDay(*query.from))
	}
	if query.to != nil {
		stmt = stmt.Where("o.created_at < ?", h.startOfDay(*query.to).AddDate(0, 0, 1))
	}

	return fetchOrders(ctx, h.db, stmt.Order("o.created_at DESC, o.id"))
}

func (h GetRestaurantOrdersQueryHandler) startOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, h.location)
}

// statusCondition translates a status into the timestamp predicate that
// derives it.
func statusCondition(status order.Status) string {
	switch status {
	case order.Pending:
		return "o.started_at IS NULL"
	case order.InProcess:
		return "o.started_at IS NOT NULL AND o.sent_at IS NULL AND o.delivered_at IS NULL"
	case order.Sent:
		return "o.sent_at IS NOT NULL AND o.delivered_at IS NULL"
	case order.Delivered:
		return "o.delivered_at IS NOT NULL"
	default:
		return "FALSE"
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
