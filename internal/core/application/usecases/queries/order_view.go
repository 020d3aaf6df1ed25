package queries

import (
	"context"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the read model returned by every order listing.
type OrderView struct {
	ID             kernel.UUID
	UserID         kernel.UUID
	RestaurantID   kernel.UUID
	RestaurantName string
	Address        string
	ShippingCosts  decimal.Decimal
	Price          decimal.Decimal
	Status         order.Status
	CreatedAt      time.Time
	StartedAt      *time.Time
	SentAt         *time.Time
	DeliveredAt    *time.Time
	Lines          []LineView
}

// LineView is one order line with the product name as it is in the catalog
// today. UnitPrice is the price captured when the line was added.
type LineView struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// ordersSelect starts a statement over orders joined with their restaurant.
// Callers add filters and ordering.
func ordersSelect(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("orders AS o").
		Select(`
			o.id,
			o.user_id,
			o.restaurant_id,
			COALESCE(r.name, ''),
			o.address,
			o.shipping_costs,
			o.price,
			o.created_at,
			o.started_at,
			o.sent_at,
			o.delivered_at`).
		Joins("LEFT JOIN restaurants AS r ON r.id = o.restaurant_id")
}

// fetchOrders runs stmt and attaches the lines of every returned order.
func fetchOrders(ctx context.Context, db *gorm.DB, stmt *gorm.DB) ([]OrderView, error) {
	rows, err := stmt.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			id, userID, restaurantID       uuid.UUID
			view                           OrderView
			startedAt, sentAt, deliveredAt *time.Time
		)
		if err = rows.Scan(
			&id,
			&userID,
			&restaurantID,
			&view.RestaurantName,
			&view.Address,
			&view.ShippingCosts,
			&view.Price,
			&view.CreatedAt,
			&startedAt,
			&sentAt,
			&deliveredAt,
		); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		if view.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
			return nil, err
		}
		if view.Status, err = order.DeriveStatus(startedAt, sentAt, deliveredAt); err != nil {
			return nil, err
		}
		view.StartedAt, view.SentAt, view.DeliveredAt = startedAt, sentAt, deliveredAt
		view.Lines = make([]LineView, 0)

		index[id] = len(views)
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = attachLines(ctx, db, views, index); err != nil {
		return nil, err
	}
	return views, nil
}

func attachLines(ctx context.Context, db *gorm.DB, views []OrderView, index map[uuid.UUID]int) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			l.order_id,
			l.product_id,
			COALESCE(p.name, ''),
			l.quantity,
			l.unit_price
		FROM order_lines AS l
		LEFT JOIN products AS p ON p.id = l.product_id
		WHERE l.order_id IN ?
		ORDER BY l.order_id, l.position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID, productID uuid.UUID
			line               LineView
		)
		if err = rows.Scan(&orderID, &productID, &line.ProductName, &line.Quantity, &line.UnitPrice); err != nil {
			return err
		}
		if line.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return err
		}
		i := index[orderID]
		views[i].Lines = append(views[i].Lines, line)
	}
	return rows.Err()
}

func ensureRestaurantExists(ctx context.Context, db *gorm.DB, id kernel.UUID) error {
	var exists bool
	err := db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = ?)", id.Bytes()).
		Row().
		Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("restaurantId", id.String())
	}
	return nil
}
