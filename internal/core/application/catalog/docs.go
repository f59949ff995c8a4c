// Package catalog holds the authoritative in-memory product registry with
// write-through persistence. It owns the initialized-once lifecycle of the
// product list and the all-or-nothing stock reservation used during
// fulfillment.
package catalog
