package commands

import (
	"context"
	"errors"
	"fmt"

	"foodorders/internal/pkg/guard"
)

var ErrReconcileServiceTimesCommandIsNotConstructed = errors.New(
	"ReconcileServiceTimesCommand must be created via NewReconcileServiceTimesCommand constructor",
)

// ReconcileServiceTimesCommand recalculates the service time of every
// restaurant. It repairs statistics left stale by a failed delivery side
// effect.
type ReconcileServiceTimesCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileServiceTimesCommand() ReconcileServiceTimesCommand {
	return ReconcileServiceTimesCommand{guard: guard.NewConstructorGuard()}
}

func (c ReconcileServiceTimesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileServiceTimesCommandIsNotConstructed)
}

type ReconcileServiceTimesCommandHandler struct {
	uowFactory  UoWFactory
	recalculate RecalculateServiceTimeCommandHandler
}

func NewReconcileServiceTimesCommandHandler(uowFactory UoWFactory) ReconcileServiceTimesCommandHandler {
	return ReconcileServiceTimesCommandHandler{
		uowFactory:  uowFactory,
		recalculate: NewRecalculateServiceTimeCommandHandler(uowFactory),
	}
}

// Handle recalculates each restaurant in its own unit of work, so one
// failure does not undo the others. It returns how many restaurants were
// updated and the joined failures.
func (h *ReconcileServiceTimesCommandHandler) Handle(ctx context.Context, cmd ReconcileServiceTimesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.uowFactory.Create().CatalogRepository().ListRestaurantIDs(ctx)
	if err != nil {
		return 0, err
	}

	var (
		updated  int
		failures []error
	)
	for _, id := range ids {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}

		recalc, cmdErr := NewRecalculateServiceTimeCommand(id)
		if cmdErr != nil {
			failures = append(failures, cmdErr)
			continue
		}
		if _, err = h.recalculate.Handle(ctx, recalc); err != nil {
			failures = append(failures, fmt.Errorf("restaurant %s: %w", id, err))
			continue
		}
		updated++
	}

	return updated, errors.Join(failures...)
}
