package order

import (
	"errors"
	"strings"

	"foodify/internal/pkg/errs"
	"foodify/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when a Customer was not built via NewCustomer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer holds the contact and delivery details captured at checkout.
// They never change after the order is created.
type Customer struct {
	name    string
	address string
	phone   string

	guard guard.ConstructorGuard
}

// NewCustomer requires every field to be non-blank. Surrounding whitespace is trimmed.
func NewCustomer(name, address, phone string) (Customer, error) {
	c := Customer{
		name:    strings.TrimSpace(name),
		address: strings.TrimSpace(address),
		phone:   strings.TrimSpace(phone),
	}

	if err := errors.Join(
		required("customerName", c.name),
		required("address", c.address),
		required("phone", c.phone),
	); err != nil {
		return Customer{}, err
	}

	c.guard = guard.NewConstructorGuard()
	return c, nil
}

func required(field, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(field)
	}
	return nil
}

// Validate returns ErrCustomerIsNotConstructed for zero values.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c Customer) Name() string {
	return c.name
}

func (c Customer) Address() string {
	return c.address
}

func (c Customer) Phone() string {
	return c.phone
}
