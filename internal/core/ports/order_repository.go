// Package ports defines the contracts between the order management core and
// its infrastructure: persistence, catalog access, event publication,
// idempotency and time.
package ports

import (
	"context"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every method runs inside the transaction of the unit of work that
// produced the repository.
type OrderRepository interface {
	// Add persists a new order header together with all of its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the header of an existing order: address, shipping
	// costs, price and lifecycle timestamps. Lines are not touched.
	Update(ctx context.Context, aggregate *order.Order) error

	// ReplaceLines deletes every stored line of the order and inserts the
	// current ones. It is not a diff.
	ReplaceLines(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with its lines. A missing order yields an
	// *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Remove deletes the order and its lines.
	Remove(ctx context.Context, aggregate *order.Order) error

	// ServiceTimes returns deliveredAt - createdAt for every delivered order
	// of the restaurant.
	ServiceTimes(ctx context.Context, restaurantID kernel.UUID) ([]time.Duration, error)
}
