package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads every order ordered by creation time, newest first.
// Orders and their items are read from one snapshot, so an order deleted
// concurrently is either listed whole or not at all.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
	var items []itemRow
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Table("orders").
			Select("id", "customer_name", "address", "phone", "status", "created_at", "updated_at").
			Order("created_at DESC").
			Find(&rows).Error
		if err != nil || len(rows) == 0 {
			return err
		}

		ids := make([]uuid.UUID, len(rows))
		for i, row := range rows {
			ids[i] = row.ID
		}

		return tx.Table("order_items").
			Select("order_id", "menu_item_id", "quantity").
			Where("order_id IN ?", ids).
			Order("order_id, position").
			Find(&items).Error
	}, snapshotRead)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID][]itemRow, len(rows))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, viewErr := row.toView(byOrder[row.ID])
		if viewErr != nil {
			return nil, viewErr
		}
		views = append(views, view)
	}

	return views, nil
}
