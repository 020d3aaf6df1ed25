package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foodorders/internal/pkg/errs"
)

var (
	ErrAlreadyStarted   = errors.New("order is already started")
	ErrNotStarted       = errors.New("order is not started")
	ErrAlreadySent      = errors.New("order is already sent")
	ErrNotSent          = errors.New("order is not sent")
	ErrAlreadyDelivered = errors.New("order is already delivered")
	ErrNotPending       = errors.New("order is not pending")
)

// Status is the lifecycle state of an order. It is never stored; it is
// derived from which lifecycle timestamps are set.
//
//	Pending ──confirm──> InProcess ──send──> Sent ──deliver──> Delivered
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending orders have no lifecycle timestamp. They can still be revised
	// or destroyed.
	Pending

	// InProcess orders were confirmed by the restaurant.
	InProcess

	// Sent orders left the restaurant.
	Sent

	// Delivered is terminal.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		InProcess: "in process",
		Sent:      "sent",
		Delivered: "delivered",
	}
}

// String returns the wire name of the status: "pending", "in process",
// "sent" or "delivered".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if s < Pending || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParseStatus is the inverse of String. Matching ignores case and
// surrounding spaces.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", value))
}

// DeriveStatus maps the three lifecycle timestamps to a status.
//
//	startedAt | sentAt | deliveredAt | status
//	nil       | -      | -           | pending (only when all are nil)
//	set       | nil    | nil         | in process
//	set       | set    | nil         | sent
//	set       | set    | set         | delivered
//
// Any other combination means a later timestamp was stamped while an earlier
// one was missing and is reported as ErrInvalidState.
func DeriveStatus(startedAt, sentAt, deliveredAt *time.Time) (Status, error) {
	switch {
	case startedAt == nil && sentAt == nil && deliveredAt == nil:
		return Pending, nil
	case startedAt != nil && sentAt == nil && deliveredAt == nil:
		return InProcess, nil
	case startedAt != nil && sentAt != nil && deliveredAt == nil:
		return Sent, nil
	case startedAt != nil && sentAt != nil && deliveredAt != nil:
		return Delivered, nil
	default:
		return Unknown, errs.NewStateIsInvalidErrorWithCause(
			"derive status",
			fmt.Errorf("timestamps are not monotonic: startedAt=%v sentAt=%v deliveredAt=%v",
				startedAt != nil, sentAt != nil, deliveredAt != nil),
		)
	}
}

// Confirm returns the status after confirmation. Only Pending can be confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return s, errs.NewTransitionIsInvalidErrorWithCause("confirm", s.startedCause())
	}
	return InProcess, nil
}

// Send returns the status after the order leaves the restaurant.
func (s Status) Send() (Status, error) {
	switch s {
	case InProcess:
		return Sent, nil
	case Sent, Delivered:
		return s, errs.NewTransitionIsInvalidErrorWithCause("send", ErrAlreadySent)
	default:
		return s, errs.NewTransitionIsInvalidErrorWithCause("send", ErrNotStarted)
	}
}

// Deliver returns the terminal status.
func (s Status) Deliver() (Status, error) {
	switch s {
	case Sent:
		return Delivered, nil
	case Delivered:
		return s, errs.NewTransitionIsInvalidErrorWithCause("deliver", ErrAlreadyDelivered)
	default:
		return s, errs.NewTransitionIsInvalidErrorWithCause("deliver", ErrNotSent)
	}
}

// ValidatePending guards mutations reserved to pending orders.
func (s Status) ValidatePending(operation string) error {
	if s != Pending {
		return errs.NewStateIsInvalidErrorWithCause(operation, fmt.Errorf("%w: status is %s", ErrNotPending, s))
	}
	return nil
}

func (s Status) startedCause() error {
	if s == Unknown {
		return fmt.Errorf("%d is not a valid status", s)
	}
	return ErrAlreadyStarted
}
