package commands

import (
	"errors"

	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"
	"foodify/internal/pkg/guard"
)

var ErrForceOrderStatusCommandIsNotConstructed = errors.New(
	"ForceOrderStatusCommand must be created via NewForceOrderStatusCommand constructor",
)

// ForceOrderStatusCommand is the administrative override: it sets any valid
// status, ignoring the transition rules.
type ForceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

func NewForceOrderStatusCommand(orderID kernel.UUID, status order.Status) (ForceOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return ForceOrderStatusCommand{}, err
	}

	return ForceOrderStatusCommand{
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ForceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrForceOrderStatusCommandIsNotConstructed)
}

func (c ForceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ForceOrderStatusCommand) Status() order.Status {
	return c.status
}
