package commands

import (
	"context"

	"foodorders/internal/core/application/validation"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"
)

// UpdateOrderCommandHandler revises a pending order. Pricing is recomputed
// against the order's own restaurant, the header is rewritten and the lines
// are replaced wholesale, all in one unit of work.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	pricing    services.PricingCalculator
	clock      ports.Clock
}

func NewUpdateOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    services.NewPricingCalculator(),
		clock:      clock,
	}
}

func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	snapshot, err := loadSnapshot(ctx, uow.CatalogRepository(), o.RestaurantID(), cmd.Lines())
	if err != nil {
		return nil, err
	}
	if err = validation.ForUpdate(o, cmd.RestaurantIDSupplied(), cmd.Address(), cmd.Lines(), snapshot); err != nil {
		return nil, err
	}
	if snapshot.Restaurant == nil {
		return nil, errs.NewObjectNotFoundError("restaurantId", o.RestaurantID())
	}

	quote, err := h.pricing.Calculate(cmd.Lines(), snapshot.Products, snapshot.Restaurant.ShippingCosts())
	if err != nil {
		return nil, err
	}
	lines, err := quote.OrderLines()
	if err != nil {
		return nil, err
	}

	if err = o.Revise(cmd.Address(), lines, quote.ShippingCosts, h.clock.Now()); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = orderRepo.ReplaceLines(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
