package order

import (
	"errors"
	"fmt"

	"foodify/internal/pkg/errs"
)

var (
	// ErrStatusIsTerminal is returned by Decide when the order is already
	// DELIVERED or CANCELLED and the requested transition is not a repeated cancel.
	ErrStatusIsTerminal = errors.New("order status is terminal")

	// ErrStatusOutOfSequence is returned by Decide when a forward transition
	// skips or repeats a step of the delivery pipeline.
	ErrStatusOutOfSequence = errors.New("order status transition is out of sequence")
)

// Status is the lifecycle state of an order.
//
//	ORDER_RECEIVED ──> PREPARING ──> OUT_FOR_DELIVERY ──> DELIVERED
//	      │                │                 │
//	      └────────────────┴─────────────────┴──────────> CANCELLED
//
// DELIVERED and CANCELLED are terminal.
type Status int

const (
	// Unknown is the zero value and never a valid status.
	Unknown Status = iota
	OrderReceived
	Preparing
	OutForDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		OrderReceived:  "ORDER_RECEIVED",
		Preparing:      "PREPARING",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// Statuses lists every valid status in pipeline order, CANCELLED last.
func Statuses() []Status {
	return []Status{OrderReceived, Preparing, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus converts the persisted/wire name of a status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate returns an *errs.ValueIsInvalidError for Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no ordinary transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the following step of the delivery pipeline.
// ok is false for terminal and invalid statuses.
func (s Status) Next() (next Status, ok bool) {
	switch s { //nolint:exhaustive // only pipeline steps have a successor
	case OrderReceived:
		return Preparing, true
	case Preparing:
		return OutForDelivery, true
	case OutForDelivery:
		return Delivered, true
	default:
		return Unknown, false
	}
}

// Decide is the order state machine. It returns the status an order in
// current ends up in when requested is applied, or the reason it may not.
//
//   - CANCELLED from CANCELLED is an idempotent no-op.
//   - CANCELLED from DELIVERED is an *errs.ConflictError.
//   - CANCELLED from any other status is allowed.
//   - Any other request from a terminal status is ErrStatusIsTerminal.
//   - A forward request is allowed only to current.Next(); anything else
//     is ErrStatusOutOfSequence.
//
// The administrative override does not go through Decide; see Order.ForceStatus.
//
// Parameters:
//   - current: The status the order is in now
//   - requested: The status the caller asks for
//
// Returns:
//   - Status: The resulting status when the transition is allowed, Unknown otherwise
//   - error: One of the errors above, or *errs.ValueIsInvalidError when either
//     status is not an enumerated value
//
// Example:
//
//	next, err := Decide(OrderReceived, Preparing)   // Preparing, nil
//	_, err = Decide(OrderReceived, OutForDelivery)  // ErrStatusOutOfSequence
//	_, err = Decide(Delivered, Cancelled)           // *errs.ConflictError
func Decide(current, requested Status) (Status, error) {
	if err := errors.Join(current.Validate(), requested.Validate()); err != nil {
		return Unknown, err
	}

	if requested == Cancelled {
		switch current { //nolint:exhaustive // every non-terminal status may be cancelled
		case Cancelled:
			return Cancelled, nil
		case Delivered:
			return Unknown, errs.NewConflictError("cannot cancel a delivered order")
		default:
			return Cancelled, nil
		}
	}

	if current.IsTerminal() {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrStatusIsTerminal, current, requested)
	}

	if next, ok := current.Next(); ok && next == requested {
		return requested, nil
	}

	return Unknown, fmt.Errorf("%w: %s -> %s", ErrStatusOutOfSequence, current, requested)
}

// MarshalText encodes the status as its wire name.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a wire name produced by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
