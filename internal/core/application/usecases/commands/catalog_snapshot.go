package commands

import (
	"context"
	"errors"

	"foodorders/internal/core/application/validation"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"
)

// loadSnapshot reads the restaurant and the referenced products inside the
// current transaction. Not found becomes an empty slot for the validator;
// any other failure aborts the command.
func loadSnapshot(
	ctx context.Context,
	repo ports.CatalogRepository,
	restaurantID kernel.UUID,
	lines []services.LineRequest,
) (validation.Snapshot, error) {
	var snapshot validation.Snapshot

	if !restaurantID.IsZero() {
		restaurant, err := repo.GetRestaurant(ctx, restaurantID)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
		case err != nil:
			return validation.Snapshot{}, err
		default:
			snapshot.Restaurant = restaurant
		}
	}

	ids := productIDs(lines)
	if len(ids) == 0 {
		return snapshot, nil
	}
	products, err := repo.GetProducts(ctx, ids)
	if err != nil {
		return validation.Snapshot{}, err
	}
	snapshot.Products = products
	return snapshot, nil
}

func productIDs(lines []services.LineRequest) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(lines))
	ids := make([]kernel.UUID, 0, len(lines))
	for _, l := range lines {
		if l.ProductID.IsZero() {
			continue
		}
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}
