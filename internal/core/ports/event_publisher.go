package ports

import (
	"context"

	"foodorders/internal/core/domain/model/order"
)

// OrderEventPublisher delivers committed order events to the outside world.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
