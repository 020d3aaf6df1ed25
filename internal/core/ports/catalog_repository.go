package ports

import (
	"context"

	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"
)

// CatalogRepository reads restaurants and products. Missing rows are reported
// as *errs.ObjectNotFoundError so callers can tell them from I/O failures.
type CatalogRepository interface {
	GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error)

	// LockRestaurant loads the restaurant and holds its row lock until the
	// transaction ends. Statistic recomputations for one restaurant run one
	// at a time behind it.
	LockRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error)
	GetProduct(ctx context.Context, id kernel.UUID) (*catalog.Product, error)

	// GetProducts returns the products found among ids. Unknown ids are
	// simply absent from the map.
	GetProducts(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*catalog.Product, error)

	ListRestaurantIDs(ctx context.Context) ([]kernel.UUID, error)

	// UpdateStatistics persists the restaurant's average service time.
	UpdateStatistics(ctx context.Context, restaurant *catalog.Restaurant) error
}
