package commands

import (
	"context"
	"errors"

	"foodify/internal/core/domain/model/order"
)

// AdvanceOrderCommandHandler applies ordinary forward transitions.
//
// Outcomes:
//   - order missing: *errs.ObjectNotFoundError
//   - order terminal: the unchanged order, nil error, nothing written
//   - target is the next step: the updated order, written
//   - any other target: the unchanged order and order.ErrStatusOutOfSequence
//
// Example:
//
//	updated, err := handler.Handle(ctx, cmd)
//	if err == nil && updated.Status() == cmd.Target() {
//	    // the transition happened
//	}
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (*order.Order, error) {
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

	err = current.Advance(cmd.Target())
	switch {
	case errors.Is(err, order.ErrStatusIsTerminal):
		return current, nil
	case err != nil:
		return current, err
	}

	if err = orderRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return current, nil
}
