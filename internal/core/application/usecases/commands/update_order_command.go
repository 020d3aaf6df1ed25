package commands

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand replaces the address and the full set of lines of a
// pending order. restaurantIDSupplied records whether the request tried to
// name a restaurant, which the validator rejects.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	address              string
	lines                []services.LineRequest
	restaurantIDSupplied bool

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(
	orderID kernel.UUID,
	address string,
	lines []services.LineRequest,
	restaurantIDSupplied bool,
) (UpdateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		orderID:              orderID,
		address:              address,
		lines:                append([]services.LineRequest(nil), lines...),
		restaurantIDSupplied: restaurantIDSupplied,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c UpdateOrderCommand) Address() string               { return c.address }
func (c UpdateOrderCommand) Lines() []services.LineRequest { return c.lines }
func (c UpdateOrderCommand) RestaurantIDSupplied() bool    { return c.restaurantIDSupplied }
