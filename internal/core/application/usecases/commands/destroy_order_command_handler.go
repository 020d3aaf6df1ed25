package commands

import (
	"context"

	"foodorders/internal/core/application/validation"
	"foodorders/internal/core/ports"
)

// DestroyOrderCommandHandler removes a pending order and its lines atomically.
// Any other status fails with an error wrapping errs.ErrInvalidState and
// leaves the order intact.
type DestroyOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewDestroyOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) DestroyOrderCommandHandler {
	return DestroyOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *DestroyOrderCommandHandler) Handle(ctx context.Context, cmd DestroyOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = validation.ForDestroy(o); err != nil {
		return err
	}
	if err = o.Destroy(h.clock.Now()); err != nil {
		return err
	}
	if err = orderRepo.Remove(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
