package ports

import (
	"context"

	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"
)

// OrderStatusEvent announces that an order reached a new status.
type OrderStatusEvent struct {
	OrderID kernel.UUID  `json:"orderId"`
	Status  order.Status `json:"status"`
}

// StatusPublisher delivers status events to whoever is listening at the time.
// Events are not stored; a subscriber that joins later does not see them.
type StatusPublisher interface {
	Publish(ctx context.Context, event OrderStatusEvent) error
}
