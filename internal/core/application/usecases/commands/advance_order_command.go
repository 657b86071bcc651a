package commands

import (
	"errors"
	"fmt"

	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"
	"foodify/internal/pkg/errs"
	"foodify/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand asks to move an order to the next step of the delivery
// pipeline. The target names the step the caller expects to be next, so a
// caller that is out of date gets order.ErrStatusOutOfSequence instead of a
// silent skip.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand accepts PREPARING, OUT_FOR_DELIVERY and DELIVERED as targets.
func NewAdvanceOrderCommand(orderID kernel.UUID, target order.Status) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceOrderCommand) Target() order.Status {
	return c.target
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == order.OrderReceived || target == order.Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("target",
			fmt.Errorf("%s is not a step of the delivery pipeline", target))
	}

	c.target = target
	return nil
}
