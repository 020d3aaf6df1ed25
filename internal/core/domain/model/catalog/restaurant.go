package catalog

import (
	"errors"
	"fmt"
	"math"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant exposes the inputs order pricing needs plus the running
// average service time, which is nil until the first delivery.
type Restaurant struct {
	id                    kernel.UUID
	name                  string
	shippingCosts         decimal.Decimal
	averageServiceMinutes *float64

	isConstructed bool
}

func NewRestaurant(
	id kernel.UUID,
	name string,
	shippingCosts decimal.Decimal,
	averageServiceMinutes *float64,
) (*Restaurant, error) {
	r := &Restaurant{name: name, isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setShippingCosts(shippingCosts),
		r.SetAverageServiceMinutes(averageServiceMinutes),
	); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

func (r *Restaurant) ID() kernel.UUID                 { return r.id }
func (r *Restaurant) Name() string                    { return r.name }
func (r *Restaurant) ShippingCosts() decimal.Decimal  { return r.shippingCosts }
func (r *Restaurant) AverageServiceMinutes() *float64 { return r.averageServiceMinutes }

// SetAverageServiceMinutes replaces the statistic. Nil clears it.
func (r *Restaurant) SetAverageServiceMinutes(minutes *float64) error {
	if minutes == nil {
		r.averageServiceMinutes = nil
		return nil
	}
	if math.IsNaN(*minutes) || *minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"averageServiceMinutes is invalid",
			fmt.Errorf("%v is not a non-negative number", *minutes),
		)
	}
	v := *minutes
	r.averageServiceMinutes = &v
	return nil
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setShippingCosts(costs decimal.Decimal) error {
	if costs.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("shippingCosts is invalid", fmt.Errorf("%s is negative", costs))
	}
	r.shippingCosts = costs
	return nil
}
