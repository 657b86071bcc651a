package commands

import (
	"context"

	"foodify/internal/core/domain/model/order"
)

// ForceOrderStatusCommandHandler writes the requested status unconditionally.
type ForceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewForceOrderStatusCommandHandler(uowFactory OrderUoWFactory) ForceOrderStatusCommandHandler {
	return ForceOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ForceOrderStatusCommandHandler) Handle(ctx context.Context, cmd ForceOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = current.ForceStatus(cmd.Status()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return current, nil
}
