package order

import (
	"errors"
	"fmt"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one product of an order. UnitPrice is a snapshot of the catalog
// price taken when the line was written; later catalog changes never
// reach it.
type Line struct {
	id        kernel.UUID
	productID kernel.UUID
	quantity  int
	unitPrice decimal.Decimal
}

func NewLine(id, productID kernel.UUID, quantity int, unitPrice decimal.Decimal) (*Line, error) {
	l := &Line{}
	if err := errors.Join(
		l.setID(id),
		l.setProductID(productID),
		l.setQuantity(quantity),
		l.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Line) ID() kernel.UUID            { return l.id }
func (l *Line) ProductID() kernel.UUID     { return l.productID }
func (l *Line) Quantity() int              { return l.quantity }
func (l *Line) UnitPrice() decimal.Decimal { return l.unitPrice }

// Subtotal is quantity * unit price.
func (l *Line) Subtotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	l.productID = id
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice is invalid", fmt.Errorf("%s is negative", price))
	}
	l.unitPrice = price
	return nil
}
