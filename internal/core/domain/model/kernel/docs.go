// Package kernel provides core domain primitives for the notifier system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - Phone: the canonical dispatch address derived from a free-form phone string
//   - Money: exact decimal arithmetic in minor units for order totals
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
