// Package kernel provides core domain primitives for the fulfillment engine.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package currently contains a single primitive:
//   - UUID: a value object for unique identifiers with validation and
//     comparison capabilities
//
// The primitives are immutable and thread-safe, making them suitable for
// concurrent use across the reconciliation pipeline.
package kernel
