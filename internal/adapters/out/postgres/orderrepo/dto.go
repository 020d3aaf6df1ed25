// Package orderrepo persists the Order aggregate in two tables: orders for
// the header and order_lines for the lines, which are owned by the order and
// removed with it.
package orderrepo

import (
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status is not stored; it is derived from the
// lifecycle timestamps when the aggregate is restored.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Address       string          `gorm:"not null"`
	ShippingCosts decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt     time.Time       `gorm:"not null;index"`
	StartedAt     *time.Time
	SentAt        *time.Time
	DeliveredAt   *time.Time
	Lines         []LineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is an order_lines row. Position keeps the request order.
type LineDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Position  int             `gorm:"not null"`
}

func (LineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		UserID:        aggregate.UserID().Bytes(),
		RestaurantID:  aggregate.RestaurantID().Bytes(),
		Address:       aggregate.Address(),
		ShippingCosts: aggregate.ShippingCosts(),
		Price:         aggregate.Price(),
		CreatedAt:     aggregate.CreatedAt(),
		StartedAt:     aggregate.StartedAt(),
		SentAt:        aggregate.SentAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		Lines:         linesFromDomain(aggregate),
	}
}

func linesFromDomain(aggregate *order.Order) []LineDTO {
	lines := aggregate.Lines()
	dtos := make([]LineDTO, 0, len(lines))
	for i, l := range lines {
		dtos = append(dtos, LineDTO{
			ID:        l.ID().Bytes(),
			OrderID:   aggregate.ID().Bytes(),
			ProductID: l.ProductID().Bytes(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
			Position:  i,
		})
	}
	return dtos
}

// headerColumns lists the mutable header columns. A map is used so that
// cleared timestamps and zero amounts are written too.
func headerColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"address":        dto.Address,
		"shipping_costs": dto.ShippingCosts,
		"price":          dto.Price,
		"started_at":     dto.StartedAt,
		"sent_at":        dto.SentAt,
		"delivered_at":   dto.DeliveredAt,
	}
}

// toDomain restores the aggregate. Lines must already be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lineID, lineErr := kernel.UUIDFromBytes(l.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		productID, lineErr := kernel.UUIDFromBytes(l.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		line, lineErr := order.NewLine(lineID, productID, l.Quantity, l.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id, userID, restaurantID,
		dto.Address,
		lines,
		dto.ShippingCosts, dto.Price,
		dto.CreatedAt,
		dto.StartedAt, dto.SentAt, dto.DeliveredAt,
	)
}
