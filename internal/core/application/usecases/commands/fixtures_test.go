package commands_test

import (
	"testing"
	"time"

	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() clock.Clock {
	return clock.Fixed(now)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// menu is a restaurant with a 3.00 shipping default selling one 4.00 product.
type menu struct {
	restaurant *catalog.Restaurant
	product    *catalog.Product
}

func newMenu(t *testing.T) menu {
	t.Helper()
	restaurant, err := catalog.NewRestaurant(kernel.NewUUID(), "Da Mario", dec("3.00"), nil)
	require.NoError(t, err)
	product, err := catalog.NewProduct(kernel.NewUUID(), restaurant.ID(), "Pizza", dec("4.00"), true)
	require.NoError(t, err)
	return menu{restaurant: restaurant, product: product}
}

func (m menu) products() map[kernel.UUID]*catalog.Product {
	return map[kernel.UUID]*catalog.Product{m.product.ID(): m.product}
}

// pendingOrder has two pizzas: 8.00 + 3.00 shipping.
func (m menu) pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), m.product.ID(), 2, m.product.Price())
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), m.restaurant.ID(), "Main St 1",
		[]*order.Line{line}, m.restaurant.ShippingCosts(), now.Add(-time.Hour))
	require.NoError(t, err)
	o.PullEvents()
	return o
}

func (m menu) sentOrder(t *testing.T) *order.Order {
	t.Helper()
	o := m.pendingOrder(t)
	require.NoError(t, o.Confirm(now.Add(-50*time.Minute)))
	require.NoError(t, o.Send(now.Add(-30*time.Minute)))
	o.PullEvents()
	return o
}
