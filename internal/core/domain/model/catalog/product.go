package catalog

import (
	"errors"
	"fmt"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a read-only catalog entry. Its price is copied onto order lines
// at the time they are written.
type Product struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	name         string
	price        decimal.Decimal
	available    bool

	isConstructed bool
}

func NewProduct(
	id, restaurantID kernel.UUID,
	name string,
	price decimal.Decimal,
	available bool,
) (*Product, error) {
	p := &Product{name: name, available: available, isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setRestaurantID(restaurantID),
		p.setPrice(price),
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID           { return p.id }
func (p *Product) RestaurantID() kernel.UUID { return p.restaurantID }
func (p *Product) Name() string              { return p.name }
func (p *Product) Price() decimal.Decimal    { return p.price }
func (p *Product) Available() bool           { return p.available }

// BelongsTo reports whether the product is sold by the given restaurant.
func (p *Product) BelongsTo(restaurantID kernel.UUID) bool {
	return p.restaurantID.IsEqual(restaurantID)
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	p.restaurantID = id
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%s is negative", price))
	}
	p.price = price
	return nil
}
