// Package orderrepo maps order aggregates to the orders and order_items tables.
package orderrepo

import (
	"time"

	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is a row of the orders table together with its items.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerName string
	Address      string
	Phone        string
	Status       string         `gorm:"type:varchar(32)"`
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is a row of the order_items table. Position keeps the
// checkout order of the lines.
type OrderItemDTO struct {
	ID         int64     `gorm:"primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Position   int
	MenuItemID uuid.UUID `gorm:"type:uuid"`
	Quantity   int
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := o.Items()
	dtoItems := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		dtoItems = append(dtoItems, OrderItemDTO{
			OrderID:    o.ID().Bytes(),
			Position:   i,
			MenuItemID: item.MenuItemID().Bytes(),
			Quantity:   item.Quantity(),
		})
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		CustomerName: o.Customer().Name(),
		Address:      o.Customer().Address(),
		Phone:        o.Customer().Phone(),
		Status:       o.Status().String(),
		Items:        dtoItems,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. Items must already be
// sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.CustomerName, dto.Address, dto.Phone)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, idErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.NewItem(menuItemID, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customer, items, status, dto.CreatedAt, dto.UpdatedAt)
}
