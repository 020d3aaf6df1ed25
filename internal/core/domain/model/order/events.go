package order

import (
	"time"

	"foodorders/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventCreated   EventType = "order.created"
	EventUpdated   EventType = "order.updated"
	EventConfirmed EventType = "order.confirmed"
	EventSent      EventType = "order.sent"
	EventDelivered EventType = "order.delivered"
	EventDestroyed EventType = "order.destroyed"
)

// Event is a fact about one order, recorded by the aggregate and published
// only after the unit of work that produced it commits.
type Event struct {
	Type         EventType
	OrderID      kernel.UUID
	UserID       kernel.UUID
	RestaurantID kernel.UUID
	Status       Status
	Price        decimal.Decimal
	OccurredAt   time.Time
}

func (o *Order) record(eventType EventType, at time.Time) {
	o.events = append(o.events, Event{
		Type:         eventType,
		OrderID:      o.id,
		UserID:       o.userID,
		RestaurantID: o.restaurantID,
		Status:       o.Status(),
		Price:        o.price,
		OccurredAt:   at,
	})
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}
