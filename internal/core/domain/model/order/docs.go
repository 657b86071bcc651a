// Package order contains the Order aggregate and its state machine.
//
// The package includes:
//   - Order: the aggregate root (identity, items, customer details, status)
//   - Item and Customer: immutable value objects captured at checkout
//   - Status and Decide: the closed status enumeration and the pure
//     transition function every ordinary status change goes through
//
// Key business rules:
//   - an order has at least one item, each with quantity >= 1
//   - status moves ORDER_RECEIVED -> PREPARING -> OUT_FOR_DELIVERY -> DELIVERED,
//     one step at a time, or to CANCELLED from any non-terminal status
//   - DELIVERED and CANCELLED are terminal; only ForceStatus may leave them
package order
