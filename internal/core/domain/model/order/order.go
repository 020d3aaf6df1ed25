package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPriceMismatch is returned when a stored price does not equal the sum of
	// line subtotals plus shipping costs.
	ErrPriceMismatch = errors.New("price does not match lines and shipping costs")
)

// Order is the aggregate root of order management.
//
// Order follows these invariants:
//   - userID and restaurantID never change after creation
//   - At least one line, every quantity positive
//   - price == Σ line.Subtotal() + shippingCosts
//   - startedAt, sentAt and deliveredAt are stamped in that order and never cleared
//
// The status is not a field. It is computed from the timestamps, so a
// stored order can never disagree with itself.
type Order struct {
	id           kernel.UUID
	userID       kernel.UUID
	restaurantID kernel.UUID

	// address is the delivery destination, editable while pending
	address string

	lines         []*Line
	shippingCosts decimal.Decimal
	price         decimal.Decimal

	createdAt   time.Time
	startedAt   *time.Time
	sentAt      *time.Time
	deliveredAt *time.Time

	events []Event
	guard  guard.ConstructorGuard
}

// NewOrder creates a pending order and records EventCreated.
//
// Parameters:
//   - id: identifier of the new order
//   - userID: the customer placing the order
//   - restaurantID: the restaurant every line is bought from
//   - address: delivery address, must not be blank
//   - lines: at least one line with snapshotted unit prices
//   - shippingCosts: the value decided by the shipping-cost policy
//   - createdAt: creation instant, taken from the clock
//
// The price is computed here and is never supplied by the caller.
//
// Example:
//
//	line, _ := order.NewLine(kernel.NewUUID(), productID, 2, decimal.RequireFromString("4.00"))
//	o, err := order.NewOrder(kernel.NewUUID(), userID, restaurantID, "Main St 1",
//	    []*order.Line{line}, decimal.RequireFromString("3.00"), clock.Now())
//	// o.Price() == 11.00
func NewOrder(
	id, userID, restaurantID kernel.UUID,
	address string,
	lines []*Line,
	shippingCosts decimal.Decimal,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setRestaurantID(restaurantID),
		o.setAddress(address),
		o.setLines(lines),
		o.setShippingCosts(shippingCosts),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	o.price = o.computePrice()
	o.record(EventCreated, createdAt)

	return o, nil
}

// RestoreOrder rebuilds an order read from persistence. On top of the
// NewOrder checks it verifies the stored price and the timestamp ordering.
// No event is recorded.
func RestoreOrder(
	id, userID, restaurantID kernel.UUID,
	address string,
	lines []*Line,
	shippingCosts, price decimal.Decimal,
	createdAt time.Time,
	startedAt, sentAt, deliveredAt *time.Time,
) (*Order, error) {
	o := &Order{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setRestaurantID(restaurantID),
		o.setAddress(address),
		o.setLines(lines),
		o.setShippingCosts(shippingCosts),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if _, err := DeriveStatus(startedAt, sentAt, deliveredAt); err != nil {
		return nil, err
	}
	if err := errors.Join(
		checkNotBefore("startedAt", startedAt, createdAt),
		checkNotBefore("sentAt", sentAt, derefOr(startedAt, createdAt)),
		checkNotBefore("deliveredAt", deliveredAt, derefOr(sentAt, createdAt)),
	); err != nil {
		return nil, err
	}
	o.startedAt, o.sentAt, o.deliveredAt = startedAt, sentAt, deliveredAt

	if computed := o.computePrice(); !computed.Equal(price) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"price is invalid",
			fmt.Errorf("%w: stored %s, computed %s", ErrPriceMismatch, price, computed),
		)
	}
	o.price = price

	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) UserID() kernel.UUID            { return o.userID }
func (o *Order) RestaurantID() kernel.UUID      { return o.restaurantID }
func (o *Order) Address() string                { return o.address }
func (o *Order) ShippingCosts() decimal.Decimal { return o.shippingCosts }
func (o *Order) Price() decimal.Decimal         { return o.price }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) StartedAt() *time.Time          { return o.startedAt }
func (o *Order) SentAt() *time.Time             { return o.sentAt }
func (o *Order) DeliveredAt() *time.Time        { return o.deliveredAt }

// Lines returns a copy of the line slice. Line values are immutable.
func (o *Order) Lines() []*Line {
	lines := make([]*Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Subtotal is the sum of the line subtotals.
func (o *Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range o.lines {
		subtotal = subtotal.Add(l.Subtotal())
	}
	return subtotal
}

// Status derives the lifecycle state from the timestamps.
func (o *Order) Status() Status {
	status, err := DeriveStatus(o.startedAt, o.sentAt, o.deliveredAt)
	if err != nil {
		return Unknown
	}
	return status
}

// Confirm moves a pending order to InProcess and stamps startedAt.
//
// Returns a TransitionIsInvalidError wrapping ErrAlreadyStarted when the
// order was confirmed before.
func (o *Order) Confirm(now time.Time) error {
	if _, err := o.Status().Confirm(); err != nil {
		return err
	}
	if err := checkNotBefore("startedAt", &now, o.createdAt); err != nil {
		return err
	}

	o.startedAt = &now
	o.record(EventConfirmed, now)
	return nil
}

// Send stamps sentAt. The order must be InProcess; otherwise the error
// wraps ErrNotStarted or ErrAlreadySent.
func (o *Order) Send(now time.Time) error {
	if _, err := o.Status().Send(); err != nil {
		return err
	}
	if err := checkNotBefore("sentAt", &now, *o.startedAt); err != nil {
		return err
	}

	o.sentAt = &now
	o.record(EventSent, now)
	return nil
}

// Deliver stamps deliveredAt. The order must be Sent; otherwise the error
// wraps ErrNotSent or ErrAlreadyDelivered.
//
// The restaurant statistic is not touched here. Callers recompute it in the
// same unit of work from the persisted service times.
func (o *Order) Deliver(now time.Time) error {
	if _, err := o.Status().Deliver(); err != nil {
		return err
	}
	if err := checkNotBefore("deliveredAt", &now, *o.sentAt); err != nil {
		return err
	}

	o.deliveredAt = &now
	o.record(EventDelivered, now)
	return nil
}

// Revise replaces the address, the whole set of lines and the shipping
// costs of a pending order, then recomputes the price. The restaurant stays
// the same. On error the order is left untouched.
func (o *Order) Revise(address string, lines []*Line, shippingCosts decimal.Decimal, now time.Time) error {
	if err := o.Status().ValidatePending("update"); err != nil {
		return err
	}

	revised := &Order{}
	if err := errors.Join(
		revised.setAddress(address),
		revised.setLines(lines),
		revised.setShippingCosts(shippingCosts),
	); err != nil {
		return err
	}

	o.address = revised.address
	o.lines = revised.lines
	o.shippingCosts = revised.shippingCosts
	o.price = o.computePrice()
	o.record(EventUpdated, now)
	return nil
}

// Destroy checks that the order may be removed and records EventDestroyed.
// Removing the order and its lines is the repository's job.
func (o *Order) Destroy(now time.Time) error {
	if err := o.Status().ValidatePending("destroy"); err != nil {
		return err
	}
	o.record(EventDestroyed, now)
	return nil
}

// ServiceTime is deliveredAt - createdAt. The flag is false until the order
// is delivered.
func (o *Order) ServiceTime() (time.Duration, bool) {
	if o.deliveredAt == nil {
		return 0, false
	}
	return o.deliveredAt.Sub(o.createdAt), true
}

func (o *Order) computePrice() decimal.Decimal {
	return o.Subtotal().Add(o.shippingCosts)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	o.userID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("products")
	}
	for i, l := range lines {
		if l == nil {
			return errs.NewValueIsRequiredErrorWithCause("products", fmt.Errorf("line %d is nil", i))
		}
	}
	o.lines = make([]*Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setShippingCosts(costs decimal.Decimal) error {
	if costs.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("shippingCosts is invalid", fmt.Errorf("%s is negative", costs))
	}
	o.shippingCosts = costs
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func checkNotBefore(name string, ts *time.Time, earlier time.Time) error {
	if ts != nil && ts.Before(earlier) {
		return errs.NewValueIsInvalidErrorWithCause(
			name+" is invalid",
			fmt.Errorf("%s is before %s", ts.Format(time.RFC3339), earlier.Format(time.RFC3339)),
		)
	}
	return nil
}

func derefOr(ts *time.Time, fallback time.Time) time.Time {
	if ts == nil {
		return fallback
	}
	return *ts
}
