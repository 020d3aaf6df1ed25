package commands

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/guard"
)

var ErrSendOrderCommandIsNotConstructed = errors.New(
	"SendOrderCommand must be created via NewSendOrderCommand constructor",
)

// SendOrderCommand marks an order as handed over for delivery.
type SendOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSendOrderCommand(orderID kernel.UUID) (SendOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SendOrderCommand{}, err
	}
	return SendOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c SendOrderCommand) Validate() error {
	return c.guard.Validate(ErrSendOrderCommandIsNotConstructed)
}

func (c SendOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
