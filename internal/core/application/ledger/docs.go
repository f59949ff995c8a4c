// Package ledger holds the in-memory order record with write-through
// persistence. It owns order admission, the creation-time fulfillment queue
// and shipment recording against order aggregates.
package ledger
