package commands

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
)

// advanceOrder runs a lifecycle transition that only rewrites the order
// header: load, validate, apply, update, commit.
func advanceOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	validate func(*order.Order) error,
	apply func(*order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err = validate(o); err != nil {
		return nil, err
	}
	if err = apply(o); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
