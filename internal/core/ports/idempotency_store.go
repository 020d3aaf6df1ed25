package ports

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
)

// IdempotencyStore remembers which order a client supplied key created.
type IdempotencyStore interface {
	// Lookup returns the order id stored under key, if any.
	Lookup(ctx context.Context, key string) (kernel.UUID, bool, error)

	// Remember stores id under key unless the key is already taken. It
	// reports whether the value was stored.
	Remember(ctx context.Context, key string, id kernel.UUID) (bool, error)
}
