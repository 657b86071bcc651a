// Package ports defines the contracts between the order domain and infrastructure:
// persistence (OrderRepository, UnitOfWork) and notification (StatusPublisher).
package ports

import (
	"context"

	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations are bound to the transaction of the unit of work that created them.
type OrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status of an existing order. Items and customer
	// details are immutable and are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier and locks its row until the
	// surrounding transaction ends, so concurrent status changes serialize.
	// Returns *errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes the order and its items. removed is false when nothing matched.
	Delete(ctx context.Context, id kernel.UUID) (removed bool, err error)
}
