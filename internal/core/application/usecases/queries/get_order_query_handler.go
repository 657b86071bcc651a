package queries

import (
	"context"
	"database/sql"
	"errors"

	"foodify/internal/pkg/errs"

	"gorm.io/gorm"
)

// snapshotRead makes every statement of a query see the same committed state.
var snapshotRead = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// GetOrderQueryHandler reads one order with its items from a single snapshot.
//
// Example:
//
//	query, _ := NewGetOrderQuery(id)
//	view, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var row orderRow
	var items []itemRow
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Table("orders").
			Select("id", "customer_name", "address", "phone", "status", "created_at", "updated_at").
			Where("id = ?", query.OrderID().Bytes()).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		if err != nil {
			return err
		}

		return tx.Table("order_items").
			Select("order_id", "menu_item_id", "quantity").
			Where("order_id = ?", query.OrderID().Bytes()).
			Order("position").
			Find(&items).Error
	}, snapshotRead)
	if err != nil {
		return OrderView{}, err
	}

	return row.toView(items)
}
