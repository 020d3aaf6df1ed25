// Package catalogrepo reads restaurants and products. The catalog is owned
// by another system; the only write is the restaurant's service-time
// statistic.
package catalogrepo

import (
	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RestaurantDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                  string          `gorm:"not null"`
	ShippingCosts         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	AverageServiceMinutes *float64
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

type ProductDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Available    bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func restaurantToDomain(dto RestaurantDTO) (*catalog.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewRestaurant(id, dto.Name, dto.ShippingCosts, dto.AverageServiceMinutes)
}

func productToDomain(dto ProductDTO) (*catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewProduct(id, restaurantID, dto.Name, dto.Price, dto.Available)
}
