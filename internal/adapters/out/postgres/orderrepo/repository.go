package orderrepo

import (
	"context"
	"errors"
	"time"

	"foodorders/internal/adapters/out/postgres/pgerrors"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects written aggregates so that their events can be
// published once the transaction commits.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the header and its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrors.Wrap(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the mutable header columns. Lines are left alone.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(headerColumns(dto))
	if result.Error != nil {
		return pgerrors.Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ReplaceLines deletes every stored line and inserts the current set.
func (r *GormOrderRepository) ReplaceLines(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", aggregate.ID().Bytes()).Delete(&LineDTO{}).Error; err != nil {
		return pgerrors.Wrap(err)
	}

	lines := linesFromDomain(aggregate)
	if len(lines) > 0 {
		if err := db.Create(&lines).Error; err != nil {
			return pgerrors.Wrap(err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads an order with its lines in their original order. The header row
// is read FOR UPDATE: inside a unit of work it stays locked until commit or
// rollback, so concurrent lifecycle changes of one order are serialized.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, pgerrors.Wrap(err)
	}

	return toDomain(dto)
}

// Remove deletes the lines, then the header.
func (r *GormOrderRepository) Remove(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", aggregate.ID().Bytes()).Delete(&LineDTO{}).Error; err != nil {
		return pgerrors.Wrap(err)
	}

	result := db.Where("id = ?", aggregate.ID().Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return pgerrors.Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ServiceTimes returns deliveredAt - createdAt of every delivered order of
// the restaurant.
func (r *GormOrderRepository) ServiceTimes(ctx context.Context, restaurantID kernel.UUID) ([]time.Duration, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var rows []struct {
		CreatedAt   time.Time
		DeliveredAt time.Time
	}
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("created_at", "delivered_at").
		Where("restaurant_id = ? AND delivered_at IS NOT NULL", restaurantID.Bytes()).
		Scan(&rows).Error
	if err != nil {
		return nil, pgerrors.Wrap(err)
	}

	durations := make([]time.Duration, 0, len(rows))
	for _, row := range rows {
		durations = append(durations, row.DeliveredAt.Sub(row.CreatedAt))
	}
	return durations, nil
}
