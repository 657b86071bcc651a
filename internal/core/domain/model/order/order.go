package order

import (
	"errors"
	"fmt"
	"time"

	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	errNoItems = errors.New("order must have at least one item")
)

// Order is the aggregate root of the ordering domain.
//
// Invariants:
//   - the identifier is valid and never changes
//   - there is at least one item, and items never change
//   - customer details are present and never change
//   - status is always one of the enumerated values
//
// Status changes go through Advance and Cancel, which consult Decide, or through
// ForceStatus for administrative corrections.
type Order struct {
	id       kernel.UUID
	items    []Item
	customer Customer
	status   Status

	// createdAt and updatedAt are maintained by the store and are zero
	// until the order has been persisted and restored.
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates an order in ORDER_RECEIVED status. This is the only way to
// create a new order; every field is validated and all problems are reported together.
//
// Parameters:
//   - id: Unique identifier for the order (must be a constructed UUID)
//   - customer: Contact and delivery details built with NewCustomer
//   - items: Ordered lines built with NewItem (at least one)
//
// Returns:
//   - *Order: The created order with zero timestamps until it is stored
//   - error: errors.Join of the field errors if any parameter is invalid
//
// Example:
//
//	customer, _ := order.NewCustomer("John Doe", "123 Test St", "1234567890")
//	item, _ := order.NewItem(menuItemID, 2)
//	o, err := order.NewOrder(kernel.NewUUID(), customer, []order.Item{item})
func NewOrder(id kernel.UUID, customer Customer, items []Item) (*Order, error) {
	o := &Order{
		status:        OrderReceived,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. Unlike NewOrder it keeps
// the stored status and timestamps.
//
// Parameters:
//   - id, customer, items: As for NewOrder
//   - status: The persisted status (must be one of the enumerated values)
//   - createdAt, updatedAt: Timestamps maintained by the store
//
// Returns:
//   - *Order: The restored order
//   - error: Validation error if the stored state breaks an invariant
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	items []Item,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built through NewOrder or RestoreOrder.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed for nil or zero-value orders
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
//
// Parameters:
//   - other: The order to compare with
//
// Returns:
//   - true if both orders have the same ID
//   - false if other is nil or IDs differ
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the name, address and phone the order was placed with.
func (o *Order) Customer() Customer {
	return o.customer
}

// Items returns a copy of the order lines in checkout order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current lifecycle state of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was first stored, or the zero time for an
// order that has not been persisted yet.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the stored order last changed, or the zero time for an
// order that has not been persisted yet.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Advance moves the order one step along the delivery pipeline.
//
// Parameters:
//   - target: The status directly after the current one
//
// Returns:
//   - nil when the order moved to target
//   - ErrStatusIsTerminal if the order is DELIVERED or CANCELLED
//   - ErrStatusOutOfSequence if target is not the next step, including CANCELLED
//
// The status is left unchanged whenever an error is returned.
func (o *Order) Advance(target Status) error {
	if target == Cancelled {
		return fmt.Errorf("%w: use Cancel to cancel an order", ErrStatusOutOfSequence)
	}

	next, err := Decide(o.status, target)
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

// Cancel moves the order to CANCELLED.
//
// Returns:
//   - changed: true if the status was modified, false if already cancelled
//   - err: *errs.ConflictError if the order was delivered, nil otherwise
func (o *Order) Cancel() (changed bool, err error) {
	next, err := Decide(o.status, Cancelled)
	if err != nil {
		return false, err
	}

	changed = next != o.status
	o.status = next
	return changed, nil
}

// ForceStatus sets any valid status regardless of the current one.
// It is the administrative override and does not consult Decide.
//
// Parameters:
//   - status: Any enumerated status
//
// Returns:
//   - *errs.ValueIsInvalidError if status is Unknown or out of range
func (o *Order) ForceStatus(status Status) error {
	return o.setStatus(status)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("items", errNoItems)
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", err)
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
