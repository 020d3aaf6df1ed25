package commands

import (
	"context"
	"errors"
	"fmt"

	"foodorders/internal/core/application/validation"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"
)

// CreateOrderCommandHandler validates, prices and persists a new order in a
// single unit of work: the header and every line commit together.
//
// With an idempotency store and a key on the command, the key is reserved
// for the new order id before anything is written. Keys are scoped to the
// user, so two users never share one. A repeated key returns the order
// created by the first request, or retries its creation under the same id
// when that first attempt never committed.
type CreateOrderCommandHandler struct {
	uowFactory  UoWFactory
	pricing     services.PricingCalculator
	clock       ports.Clock
	idempotency ports.IdempotencyStore
}

// NewCreateOrderCommandHandler creates the handler. idempotency may be nil.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	idempotency ports.IdempotencyStore,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		pricing:     services.NewPricingCalculator(),
		clock:       clock,
		idempotency: idempotency,
	}
}

// Handle returns the created order, a *errs.ValidationError listing every
// fault, or a system error after rolling back.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	orderID := cmd.OrderID()
	key := h.idempotencyKey(cmd)
	if key != "" {
		reserved, err := h.idempotency.Remember(ctx, key, orderID)
		if err != nil {
			return nil, err
		}
		if !reserved {
			existing, previousID, err := h.findPrevious(ctx, key)
			if err != nil || existing != nil {
				return existing, err
			}
			orderID = previousID
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	snapshot, err := loadSnapshot(ctx, uow.CatalogRepository(), cmd.RestaurantID(), cmd.Lines())
	if err != nil {
		return nil, err
	}
	if err = validation.ForCreate(cmd.RestaurantID(), cmd.Address(), cmd.Lines(), snapshot); err != nil {
		return nil, err
	}

	quote, err := h.pricing.Calculate(cmd.Lines(), snapshot.Products, snapshot.Restaurant.ShippingCosts())
	if err != nil {
		return nil, err
	}
	lines, err := quote.OrderLines()
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(
		orderID,
		cmd.UserID(),
		cmd.RestaurantID(),
		cmd.Address(),
		lines,
		quote.ShippingCosts,
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		if key != "" && errors.Is(err, errs.ErrAlreadyExists) {
			// a concurrent retry committed the same reserved id first
			return h.resolveDuplicate(ctx, key, err)
		}
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// findPrevious resolves a taken idempotency key. It returns the stored order
// when it exists, or only its id when the earlier request did not commit.
func (h *CreateOrderCommandHandler) findPrevious(ctx context.Context, key string) (*order.Order, kernel.UUID, error) {
	previousID, found, err := h.idempotency.Lookup(ctx, key)
	if err != nil {
		return nil, kernel.UUID{}, err
	}
	if !found {
		// expired between Remember and Lookup
		return nil, kernel.UUID{}, errs.NewObjectNotFoundError("Idempotency-Key", key)
	}

	uow := h.uowFactory.Create()
	existing, err := uow.OrderRepository().Get(ctx, previousID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, previousID, nil
	}
	if err != nil {
		return nil, kernel.UUID{}, err
	}
	return existing, previousID, nil
}

// resolveDuplicate returns the order stored under key after an insert lost
// the race against a request with the same key.
func (h *CreateOrderCommandHandler) resolveDuplicate(ctx context.Context, key string, insertErr error) (*order.Order, error) {
	existing, _, err := h.findPrevious(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, insertErr
	}
	return existing, nil
}

// idempotencyKey is the user scoped key, or "" when the command carries none
// or no store is configured.
func (h *CreateOrderCommandHandler) idempotencyKey(cmd CreateOrderCommand) string {
	if h.idempotency == nil || cmd.IdempotencyKey() == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", cmd.UserID(), cmd.IdempotencyKey())
}
