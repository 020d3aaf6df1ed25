package commands

import (
	"context"

	"foodorders/internal/core/application/validation"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
)

// ConfirmOrderCommandHandler stamps startedAt on a pending order. A second
// confirmation fails with an error wrapping order.ErrAlreadyStarted.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return advanceOrder(ctx, h.uowFactory, cmd.OrderID(), validation.ForConfirm, func(o *order.Order) error {
		return o.Confirm(h.clock.Now())
	})
}
