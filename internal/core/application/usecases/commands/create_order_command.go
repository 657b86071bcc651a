package commands

import (
	"errors"
	"fmt"
	"strings"

	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"
	"foodify/internal/pkg/errs"
	"foodify/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderHasNoItems  = errors.New("Order must have at least one item")
	ErrQuantityTooSmall = errors.New("quantity must be at least 1")
	ErrQuantityTooLarge = fmt.Errorf("quantity must be at most %d", order.MaxQuantity)
)

// OrderLine is one requested item as it arrives from the client.
type OrderLine struct {
	MenuItemID string
	Quantity   int
}

// CreateOrderCommand represents a checkout: customer details and the ordered items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "John Doe", "123 Test St", "1234567890",
//	    []OrderLine{{MenuItemID: menuItemID, Quantity: 2}})
//	if err != nil {
//	    return err // *errs.ValidationError with one entry per bad field
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	customer order.Customer
	items    []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field up front. Problems are reported
// together as an *errs.ValidationError keyed by field path, e.g.
// "items[1].quantity" or "customerName".
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerName, address, phone string,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(lines),
		cmd.setCustomer(customerName, address, phone),
	); err != nil {
		return CreateOrderCommand{}, errs.NewValidationError(err)
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Items returns the validated lines in request order.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setItems(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("items", ErrOrderHasNoItems)
	}

	items := make([]order.Item, 0, len(lines))
	var problems []error
	for i, line := range lines {
		item, err := newLineItem(i, line)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.items = items
	return nil
}

func newLineItem(index int, line OrderLine) (order.Item, error) {
	prefix := fmt.Sprintf("items[%d]", index)

	var problems []error
	var menuItemID kernel.UUID
	if strings.TrimSpace(line.MenuItemID) == "" {
		problems = append(problems, errs.NewValueIsRequiredError(prefix+".menuItemId"))
	} else {
		id, err := kernel.UUIDFromString(line.MenuItemID)
		if err != nil {
			problems = append(problems,
				errs.NewValueIsInvalidErrorWithCause(prefix+".menuItemId", fmt.Errorf("%q is not a valid id", line.MenuItemID)))
		}
		menuItemID = id
	}
	if line.Quantity < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(prefix+".quantity", ErrQuantityTooSmall))
	}
	if line.Quantity > order.MaxQuantity {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(prefix+".quantity", ErrQuantityTooLarge))
	}
	if err := errors.Join(problems...); err != nil {
		return order.Item{}, err
	}

	return order.NewItem(menuItemID, line.Quantity)
}

func (c *CreateOrderCommand) setCustomer(name, address, phone string) error {
	customer, err := order.NewCustomer(name, address, phone)
	if err != nil {
		return err
	}

	c.customer = customer
	return nil
}
