package order

import (
	"errors"
	"fmt"
	"math"

	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/pkg/errs"
	"foodify/internal/pkg/guard"
)

// MaxQuantity is the largest quantity one item line can hold; the store keeps it in a 32-bit column.
const MaxQuantity = math.MaxInt32

// ErrItemIsNotConstructed is returned when an Item was not built via NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of an order: a referenced menu item and how many of it.
type Item struct {
	menuItemID kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewItem validates that the menu item reference is set and quantity is within [1, MaxQuantity].
func NewItem(menuItemID kernel.UUID, quantity int) (Item, error) {
	var problems []error
	if err := menuItemID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("menuItemId", err))
	}
	if quantity < 1 {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if quantity > MaxQuantity {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d exceeds %d", quantity, MaxQuantity)))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return Item{
		menuItemID: menuItemID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrItemIsNotConstructed for zero values.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

func (i Item) Quantity() int {
	return i.quantity
}
