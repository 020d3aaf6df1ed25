package commands

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/guard"
)

var ErrDestroyOrderCommandIsNotConstructed = errors.New(
	"DestroyOrderCommand must be created via NewDestroyOrderCommand constructor",
)

// DestroyOrderCommand cancels a pending order, removing it with its lines.
type DestroyOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDestroyOrderCommand(orderID kernel.UUID) (DestroyOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DestroyOrderCommand{}, err
	}
	return DestroyOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DestroyOrderCommand) Validate() error {
	return c.guard.Validate(ErrDestroyOrderCommandIsNotConstructed)
}

func (c DestroyOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
