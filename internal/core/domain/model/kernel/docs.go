// Package kernel provides shared value objects used across the fulfillment
// domain model.
//
// The package includes:
//   - UUID: an immutable identifier value object wrapping github.com/google/uuid,
//     used for generated shipment identifiers
//
// Kernel types carry no business behavior of their own; they exist to give
// the domain model strongly typed, validated building blocks.
package kernel
