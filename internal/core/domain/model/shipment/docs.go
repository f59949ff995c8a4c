// Package shipment provides the Shipment entity, one physical package
// committed against an order. Shipments are immutable once created and form
// an append-only log keyed by the owning order id.
package shipment
