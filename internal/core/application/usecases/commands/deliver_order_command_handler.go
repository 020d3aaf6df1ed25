package commands

import (
	"context"

	"foodorders/internal/core/application/validation"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
)

// DeliverOrderCommandHandler stamps deliveredAt and recomputes the
// restaurant's average service time in the same unit of work, so a failed
// statistic update also rolls the delivery back. The caller may simply retry.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewDeliverOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = validation.ForDeliver(o); err != nil {
		return nil, err
	}
	if err = o.Deliver(h.clock.Now()); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	// reads back the row written above, so the new delivery is included
	if _, err = recalculateServiceTime(ctx, orderRepo, uow.CatalogRepository(), o.RestaurantID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
