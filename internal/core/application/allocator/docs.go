// Package allocator implements the fulfillment engine: it reacts to order
// submissions and restocks by computing shippable subsets, packing them
// under the mass ceiling and committing packages as stock reservations plus
// shipment records.
package allocator
