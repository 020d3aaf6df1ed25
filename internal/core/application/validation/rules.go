package validation

import (
	"errors"
	"fmt"
	"strings"

	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/pkg/errs"
)

var (
	ErrProductUnavailable           = errors.New("product is not available")
	ErrProductFromAnotherRestaurant = errors.New("product belongs to another restaurant")
	ErrRestaurantIsImmutable        = errors.New("restaurant of an order cannot be changed")
)

// RestaurantExists fails with a not found error when the snapshot has no restaurant.
func RestaurantExists(restaurantID kernel.UUID, restaurant *catalog.Restaurant) Rule {
	return Rule{Field: "restaurantId", Check: func() error {
		if restaurant == nil {
			return errs.NewObjectNotFoundError("restaurantId", restaurantID)
		}
		return nil
	}}
}

// RestaurantIDAbsent rejects an update payload that carries a restaurant id.
func RestaurantIDAbsent(supplied bool) Rule {
	return Rule{Field: "restaurantId", Check: func() error {
		if supplied {
			return errs.NewValueIsInvalidErrorWithCause("restaurantId", ErrRestaurantIsImmutable)
		}
		return nil
	}}
}

func AddressPresent(address string) Rule {
	return Rule{Field: "address", Check: func() error {
		if strings.TrimSpace(address) == "" {
			return errs.NewValueIsRequiredError("address")
		}
		return nil
	}}
}

// ProductsWellFormed requires at least one line, and for every line a product
// id and a positive quantity.
func ProductsWellFormed(lines []services.LineRequest) []Rule {
	rules := []Rule{{Field: "products", Check: func() error {
		if len(lines) == 0 {
			return errs.NewValueIsRequiredError("products")
		}
		return nil
	}}}

	for i, l := range lines {
		rules = append(rules,
			Rule{Field: lineField(i, "productId"), Check: func() error {
				if l.ProductID.IsZero() {
					return errs.NewValueIsRequiredError("productId")
				}
				return nil
			}},
			Rule{Field: lineField(i, "quantity"), Check: func() error {
				if l.Quantity <= 0 {
					return errs.NewValueIsInvalidErrorWithCause(
						"quantity is invalid",
						fmt.Errorf("%d is not greater than 0", l.Quantity),
					)
				}
				return nil
			}},
		)
	}
	return rules
}

// ProductsAvailable requires every referenced product to exist and be
// available. Lines without a product id are left to ProductsWellFormed.
func ProductsAvailable(lines []services.LineRequest, products map[kernel.UUID]*catalog.Product) []Rule {
	rules := make([]Rule, 0, len(lines))
	for i, l := range lines {
		if l.ProductID.IsZero() {
			continue
		}
		rules = append(rules, Rule{Field: lineField(i, "productId"), Check: func() error {
			p := products[l.ProductID]
			if p == nil {
				return errs.NewObjectNotFoundErrorWithCause("productId", l.ProductID, services.ErrInvalidProduct)
			}
			if !p.Available() {
				return errs.NewValueIsInvalidErrorWithCause("productId", ErrProductUnavailable)
			}
			return nil
		}})
	}
	return rules
}

// ProductsBelongToRestaurant requires every known product to be sold by
// restaurantID. Missing products are reported by ProductsAvailable.
func ProductsBelongToRestaurant(
	lines []services.LineRequest,
	products map[kernel.UUID]*catalog.Product,
	restaurantID kernel.UUID,
) []Rule {
	rules := make([]Rule, 0, len(lines))
	for i, l := range lines {
		p := products[l.ProductID]
		if p == nil {
			continue
		}
		rules = append(rules, Rule{Field: lineField(i, "productId"), Check: func() error {
			if !p.BelongsTo(restaurantID) {
				return errs.NewValueIsInvalidErrorWithCause(
					"productId",
					fmt.Errorf("%w: %s is not sold by %s", ErrProductFromAnotherRestaurant, p.ID(), restaurantID),
				)
			}
			return nil
		}})
	}
	return rules
}

// OrderIsPending guards update and destroy.
func OrderIsPending(o *order.Order, operation string) Rule {
	return Rule{Field: "status", Check: func() error {
		return o.Status().ValidatePending(operation)
	}}
}

func OrderNotStarted(o *order.Order) Rule {
	return Rule{Field: "status", Check: func() error {
		_, err := o.Status().Confirm()
		return err
	}}
}

func OrderCanBeSent(o *order.Order) Rule {
	return Rule{Field: "status", Check: func() error {
		_, err := o.Status().Send()
		return err
	}}
}

func OrderCanBeDelivered(o *order.Order) Rule {
	return Rule{Field: "status", Check: func() error {
		_, err := o.Status().Deliver()
		return err
	}}
}

func lineField(i int, name string) string {
	return fmt.Sprintf("products[%d].%s", i, name)
}
