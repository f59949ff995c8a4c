// Package product provides the Product entity for the fulfillment system.
//
// A Product couples an externally assigned identifier with a display name,
// a per-unit mass in grams, and the authoritative stock count. Stock can
// only move through Restock (increment) and Reserve (decrement), and the
// entity guarantees it never goes negative.
package product
