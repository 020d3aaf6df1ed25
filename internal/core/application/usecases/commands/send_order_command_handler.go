package commands

import (
	"context"

	"foodorders/internal/core/application/validation"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
)

// SendOrderCommandHandler stamps sentAt on an order in process.
type SendOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewSendOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) SendOrderCommandHandler {
	return SendOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *SendOrderCommandHandler) Handle(ctx context.Context, cmd SendOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return advanceOrder(ctx, h.uowFactory, cmd.OrderID(), validation.ForSend, func(o *order.Order) error {
		return o.Send(h.clock.Now())
	})
}
