package commands

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"
)

var ErrRecalculateServiceTimeCommandIsNotConstructed = errors.New(
	"RecalculateServiceTimeCommand must be created via NewRecalculateServiceTimeCommand constructor",
)

// RecalculateServiceTimeCommand recomputes a restaurant's average service
// time from its delivered orders. It is the recovery path when a statistic
// update failed, and the cron reconciliation job issues it periodically.
type RecalculateServiceTimeCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRecalculateServiceTimeCommand(restaurantID kernel.UUID) (RecalculateServiceTimeCommand, error) {
	if err := restaurantID.Validate(); err != nil {
		return RecalculateServiceTimeCommand{}, errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	return RecalculateServiceTimeCommand{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

func (c RecalculateServiceTimeCommand) Validate() error {
	return c.guard.Validate(ErrRecalculateServiceTimeCommandIsNotConstructed)
}

func (c RecalculateServiceTimeCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}
