package catalogrepo

import (
	"context"
	"errors"

	"foodorders/internal/adapters/out/postgres/pgerrors"
	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error) {
	return r.getRestaurant(r.db.WithContext(ctx), id)
}

// LockRestaurant reads the restaurant FOR UPDATE.
func (r *GormCatalogRepository) LockRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error) {
	return r.getRestaurant(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormCatalogRepository) getRestaurant(db *gorm.DB, id kernel.UUID) (*catalog.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurantId", id.String())
		}
		return nil, pgerrors.Wrap(err)
	}
	return restaurantToDomain(dto)
}

func (r *GormCatalogRepository) GetProduct(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("productId", id.String())
		}
		return nil, pgerrors.Wrap(err)
	}
	return productToDomain(dto)
}

// GetProducts loads every known product among ids in one query.
func (r *GormCatalogRepository) GetProducts(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*catalog.Product, error) {
	products := make(map[kernel.UUID]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, pgerrors.Wrap(err)
	}

	for _, dto := range dtos {
		p, err := productToDomain(dto)
		if err != nil {
			return nil, err
		}
		products[p.ID()] = p
	}
	return products, nil
}

func (r *GormCatalogRepository) ListRestaurantIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&RestaurantDTO{}).Order("id").Pluck("id", &raw).Error; err != nil {
		return nil, pgerrors.Wrap(err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, err := kernel.UUIDFromBytes(b[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// UpdateStatistics writes averageServiceMinutes, including a cleared value.
func (r *GormCatalogRepository) UpdateStatistics(ctx context.Context, restaurant *catalog.Restaurant) error {
	if err := restaurant.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&RestaurantDTO{}).
		Where("id = ?", restaurant.ID().Bytes()).
		Update("average_service_minutes", restaurant.AverageServiceMinutes())
	if result.Error != nil {
		return pgerrors.Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("restaurantId", restaurant.ID().String())
	}
	return nil
}
