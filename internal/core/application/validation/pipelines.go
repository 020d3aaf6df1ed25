package validation

import (
	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/services"
)

// Snapshot is the catalog state a request is validated against. A nil
// Restaurant or a missing Products entry means "not found".
type Snapshot struct {
	Restaurant *catalog.Restaurant
	Products   map[kernel.UUID]*catalog.Product
}

// ForCreate checks a new order against the restaurant it names.
func ForCreate(restaurantID kernel.UUID, address string, lines []services.LineRequest, s Snapshot) error {
	rules := []Rule{
		RestaurantExists(restaurantID, s.Restaurant),
		AddressPresent(address),
	}
	rules = append(rules, ProductsWellFormed(lines)...)
	rules = append(rules, ProductsAvailable(lines, s.Products)...)
	rules = append(rules, ProductsBelongToRestaurant(lines, s.Products, restaurantID)...)
	return Validate(rules...)
}

// ForUpdate checks a revision of o. Products must belong to the restaurant
// the order already has.
func ForUpdate(
	o *order.Order,
	restaurantIDSupplied bool,
	address string,
	lines []services.LineRequest,
	s Snapshot,
) error {
	rules := []Rule{
		RestaurantIDAbsent(restaurantIDSupplied),
		AddressPresent(address),
		OrderIsPending(o, "update"),
	}
	rules = append(rules, ProductsWellFormed(lines)...)
	rules = append(rules, ProductsAvailable(lines, s.Products)...)
	rules = append(rules, ProductsBelongToRestaurant(lines, s.Products, o.RestaurantID())...)
	return Validate(rules...)
}

func ForDestroy(o *order.Order) error {
	return Validate(OrderIsPending(o, "destroy"))
}

func ForConfirm(o *order.Order) error {
	return Validate(OrderNotStarted(o))
}

func ForSend(o *order.Order) error {
	return Validate(OrderCanBeSent(o))
}

func ForDeliver(o *order.Order) error {
	return Validate(OrderCanBeDelivered(o))
}
