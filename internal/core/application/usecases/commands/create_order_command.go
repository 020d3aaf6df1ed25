package commands

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand asks for a new order. Only identities are checked here;
// the address and the lines go through the validator so that every fault is
// reported together.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), userID, restaurantID, "Main St 1",
//	    []services.LineRequest{{ProductID: pizzaID, Quantity: 2}}, req.Header.Get("Idempotency-Key"))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	userID         kernel.UUID
	restaurantID   kernel.UUID
	address        string
	lines          []services.LineRequest
	idempotencyKey string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID, userID, restaurantID kernel.UUID,
	address string,
	lines []services.LineRequest,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		restaurantID:   restaurantID,
		address:        address,
		lines:          append([]services.LineRequest(nil), lines...),
		idempotencyKey: idempotencyKey,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c CreateOrderCommand) UserID() kernel.UUID           { return c.userID }
func (c CreateOrderCommand) RestaurantID() kernel.UUID     { return c.restaurantID }
func (c CreateOrderCommand) Address() string               { return c.address }
func (c CreateOrderCommand) Lines() []services.LineRequest { return c.lines }

// IdempotencyKey is empty when the client did not send one.
func (c CreateOrderCommand) IdempotencyKey() string { return c.idempotencyKey }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	c.userID = userID
	return nil
}
