// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the notifier system. It
// implements logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderAggregator: groups pending order lines into per-customer aggregates
//   - MessageComposer: renders the customer-facing confirmation message
//
// Both services are pure: no I/O, no clock, no state. Identical input always
// yields identical output, which keeps them directly testable.
package services
