// Package queries contains read-only operations on orders. Queries read the
// store directly through gorm and never take row locks.
package queries

import (
	"time"

	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderView is the read model of an order.
type OrderView struct {
	ID           kernel.UUID
	Items        []OrderItemView
	CustomerName string
	Address      string
	Phone        string
	Status       order.Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type OrderItemView struct {
	MenuItemID kernel.UUID
	Quantity   int
}

type orderRow struct {
	ID           uuid.UUID
	CustomerName string
	Address      string
	Phone        string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type itemRow struct {
	OrderID    uuid.UUID
	MenuItemID uuid.UUID
	Quantity   int
}

func (r orderRow) toView(items []itemRow) (OrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderView{}, err
	}

	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderView{}, err
	}

	view := OrderView{
		ID:           id,
		Items:        make([]OrderItemView, 0, len(items)),
		CustomerName: r.CustomerName,
		Address:      r.Address,
		Phone:        r.Phone,
		Status:       status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}

	for _, item := range items {
		menuItemID, idErr := kernel.UUIDFromBytes(item.MenuItemID[:])
		if idErr != nil {
			return OrderView{}, idErr
		}
		view.Items = append(view.Items, OrderItemView{MenuItemID: menuItemID, Quantity: item.Quantity})
	}

	return view, nil
}
