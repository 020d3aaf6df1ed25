package services_test

import (
	"testing"

	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "product", decimal.RequireFromString(price), true)
	require.NoError(t, err)
	return p
}

func TestPricingCalculator_Calculate(t *testing.T) {
	calculator := services.NewPricingCalculator()
	defaultShipping := decimal.RequireFromString("3.00")

	tests := []struct {
		name             string
		price            string
		quantity         int
		expectedSubtotal string
		expectedShipping string
		expectedTotal    string
	}{
		{"subtotal below threshold pays shipping", "4.00", 2, "8.00", "3.00", "11.00"},
		{"subtotal above threshold ships free", "4.00", 3, "12.00", "0.00", "12.00"},
		{"subtotal exactly at threshold pays shipping", "5.00", 2, "10.00", "3.00", "13.00"},
		{"subtotal one cent above threshold ships free", "10.01", 1, "10.01", "0.00", "10.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProduct(t, tt.price)

			quote, err := calculator.Calculate(
				[]services.LineRequest{{ProductID: p.ID(), Quantity: tt.quantity}},
				map[kernel.UUID]*catalog.Product{p.ID(): p},
				defaultShipping,
			)

			require.NoError(t, err)
			assert.True(t, quote.Subtotal.Equal(decimal.RequireFromString(tt.expectedSubtotal)), "subtotal %s", quote.Subtotal)
			assert.True(t, quote.ShippingCosts.Equal(decimal.RequireFromString(tt.expectedShipping)), "shipping %s", quote.ShippingCosts)
			assert.True(t, quote.Total.Equal(decimal.RequireFromString(tt.expectedTotal)), "total %s", quote.Total)
		})
	}

	t.Run("should snapshot unit prices in request order", func(t *testing.T) {
		a, b := newProduct(t, "1.50"), newProduct(t, "2.25")

		quote, err := calculator.Calculate(
			[]services.LineRequest{{ProductID: b.ID(), Quantity: 1}, {ProductID: a.ID(), Quantity: 2}},
			map[kernel.UUID]*catalog.Product{a.ID(): a, b.ID(): b},
			defaultShipping,
		)

		require.NoError(t, err)
		require.Len(t, quote.Lines, 2)
		assert.True(t, quote.Lines[0].ProductID.IsEqual(b.ID()))
		assert.True(t, quote.Lines[0].UnitPrice.Equal(decimal.RequireFromString("2.25")))
		assert.True(t, quote.Lines[1].UnitPrice.Equal(decimal.RequireFromString("1.50")))
		assert.True(t, quote.Subtotal.Equal(decimal.RequireFromString("5.25")))
	})

	t.Run("should fail on unknown product", func(t *testing.T) {
		_, err := calculator.Calculate(
			[]services.LineRequest{{ProductID: kernel.NewUUID(), Quantity: 1}},
			map[kernel.UUID]*catalog.Product{},
			defaultShipping,
		)

		require.ErrorIs(t, err, services.ErrInvalidProduct)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestQuote_OrderLines(t *testing.T) {
	p := newProduct(t, "4.00")
	quote, err := services.NewPricingCalculator().Calculate(
		[]services.LineRequest{{ProductID: p.ID(), Quantity: 2}},
		map[kernel.UUID]*catalog.Product{p.ID(): p},
		decimal.RequireFromString("3.00"),
	)
	require.NoError(t, err)

	lines, err := quote.OrderLines()

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].ProductID().IsEqual(p.ID()))
	assert.Equal(t, 2, lines[0].Quantity())
	assert.True(t, lines[0].Subtotal().Equal(decimal.RequireFromString("8")))
}
