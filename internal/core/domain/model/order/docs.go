// Package order provides the Order aggregate for the fulfillment system.
//
// The package includes:
//   - Order: the aggregate root tracking requested versus shipped quantities
//   - Status: the derived fulfillment state (Pending, PartiallyFulfilled, Fulfilled)
//   - Item: a {product, quantity} value object shared by requests and shipments
//
// Key business rules:
//   - For every product, shipped quantity never exceeds requested quantity
//   - Status is always derived from the item sets, never set directly
//   - Fulfilled is terminal: no further shipments are recorded against it
//   - Orders with committed shipments cannot be resubmitted with new items
//
// The creation timestamp is the FIFO key used to prioritize older unmet
// orders when new stock arrives.
package order
