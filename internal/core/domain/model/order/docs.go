// Package order provides domain entities and business logic for order-line
// notification in the notifier system. It models the raw rows read from the
// row source and the per-customer aggregates built from them.
//
// The package includes:
//   - Line: one order-line row as read from the row source
//   - DeliveryStatus: a state machine that enforces valid notification status transitions
//   - AggregatedOrder: the per-customer merge of all pending lines in one pass
//   - ParseQuantity: the tolerant quantity coercion applied to raw cells
//
// Key business rules:
//   - Only lines with a blank (Pending) status participate in aggregation
//   - A resolved status (Sent or Failed) is terminal; the row is never re-notified
//   - Item quantities merge by item name; totals are summed exactly
//   - The dispatch phone comes from the first contributing line of a customer
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
