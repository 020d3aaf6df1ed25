package services

import (
	"errors"
	"fmt"

	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrInvalidProduct is returned when a line references a product that does
// not exist in the catalog.
var ErrInvalidProduct = errors.New("invalid product")

// FreeShippingThreshold is the subtotal that must be strictly exceeded for
// shipping to be free. A subtotal of exactly 10.00 still pays shipping.
var FreeShippingThreshold = decimal.NewFromInt(10)

// LineRequest is a requested (product, quantity) pair before pricing.
type LineRequest struct {
	ProductID kernel.UUID
	Quantity  int
}

// QuotedLine carries the unit price snapshot that gets persisted.
type QuotedLine struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Quote is the output of PricingCalculator.Calculate.
type Quote struct {
	Subtotal      decimal.Decimal
	ShippingCosts decimal.Decimal
	Total         decimal.Decimal
	Lines         []QuotedLine
}

// OrderLines turns the quote into order lines with fresh identifiers.
func (q Quote) OrderLines() ([]*order.Line, error) {
	lines := make([]*order.Line, 0, len(q.Lines))
	for _, ql := range q.Lines {
		l, err := order.NewLine(kernel.NewUUID(), ql.ProductID, ql.Quantity, ql.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// PricingCalculator is stateless.
//
// Example usage:
//
//	quote, err := services.NewPricingCalculator().Calculate(
//	    []services.LineRequest{{ProductID: pizzaID, Quantity: 2}},
//	    map[kernel.UUID]*catalog.Product{pizzaID: pizza}, // price 4.00
//	    restaurant.ShippingCosts(),                       // 3.00
//	)
//	// quote.Subtotal 8.00, quote.ShippingCosts 3.00, quote.Total 11.00
type PricingCalculator struct{}

func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{}
}

// Calculate prices every line with the current catalog price, in request
// order, then applies the shipping policy: shipping is free when the
// subtotal is strictly greater than FreeShippingThreshold, otherwise the
// restaurant default applies.
//
// Availability and restaurant ownership are not checked here; that is the
// validator's job.
func (PricingCalculator) Calculate(
	lines []LineRequest,
	products map[kernel.UUID]*catalog.Product,
	defaultShippingCosts decimal.Decimal,
) (Quote, error) {
	quote := Quote{Subtotal: decimal.Zero, Lines: make([]QuotedLine, 0, len(lines))}

	for _, l := range lines {
		product, ok := products[l.ProductID]
		if !ok || product == nil {
			return Quote{}, errs.NewValueIsInvalidErrorWithCause(
				"productId",
				fmt.Errorf("%w: %s", ErrInvalidProduct, l.ProductID),
			)
		}

		unitPrice := product.Price()
		quote.Subtotal = quote.Subtotal.Add(unitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		quote.Lines = append(quote.Lines, QuotedLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: unitPrice,
		})
	}

	quote.ShippingCosts = ShippingCosts(quote.Subtotal, defaultShippingCosts)
	quote.Total = quote.Subtotal.Add(quote.ShippingCosts)
	return quote, nil
}

// ShippingCosts applies the shipping policy to a subtotal.
func ShippingCosts(subtotal, defaultShippingCosts decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return defaultShippingCosts
}
