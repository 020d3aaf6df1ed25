package commands

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand is issued by restaurant staff to start preparing an order.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(orderID kernel.UUID) (ConfirmOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmOrderCommand{}, err
	}
	return ConfirmOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
