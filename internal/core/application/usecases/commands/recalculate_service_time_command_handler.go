package commands

import (
	"context"

	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/core/ports"
)

type RecalculateServiceTimeCommandHandler struct {
	uowFactory UoWFactory
}

func NewRecalculateServiceTimeCommandHandler(uowFactory UoWFactory) RecalculateServiceTimeCommandHandler {
	return RecalculateServiceTimeCommandHandler{uowFactory: uowFactory}
}

// Handle returns the restaurant with its refreshed statistic.
func (h *RecalculateServiceTimeCommandHandler) Handle(
	ctx context.Context,
	cmd RecalculateServiceTimeCommand,
) (*catalog.Restaurant, error) {
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

	restaurant, err := recalculateServiceTime(ctx, uow.OrderRepository(), uow.CatalogRepository(), cmd.RestaurantID())
	if err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// recalculateServiceTime sets the average to the mean service time of all
// delivered orders of the restaurant, or clears it when there are none.
// The restaurant row is locked before the deliveries are read, so a
// concurrent delivery for the same restaurant waits and then counts this one.
func recalculateServiceTime(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	catalogRepo ports.CatalogRepository,
	restaurantID kernel.UUID,
) (*catalog.Restaurant, error) {
	restaurant, err := catalogRepo.LockRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	durations, err := orderRepo.ServiceTimes(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	var average *float64
	if minutes, ok := services.NewServiceTimeCalculator().AverageMinutes(durations); ok {
		average = &minutes
	}
	if err = restaurant.SetAverageServiceMinutes(average); err != nil {
		return nil, err
	}
	if err = catalogRepo.UpdateStatistics(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}
