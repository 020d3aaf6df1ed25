// Package eventbus combines several order event publishers into one.
package eventbus

import (
	"context"
	"errors"

	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
)

// Fanout hands every batch to each publisher in turn. One failing publisher
// does not stop the others; the failures are joined.
type Fanout struct {
	publishers []ports.OrderEventPublisher
}

// NewFanout skips nil publishers.
func NewFanout(publishers ...ports.OrderEventPublisher) *Fanout {
	f := &Fanout{}
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, events ...order.Event) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, events...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
