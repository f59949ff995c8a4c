package ports

import (
	"context"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for the append-only
// shipment log. Shipments are immutable; there is no update operation.
type ShipmentRepository interface {
	// Add persists a single shipment.
	Add(ctx context.Context, s *shipment.Shipment) error

	// AddAll persists the given shipments in one batched write. Used when a
	// fulfillment pass commits a chunk of packages at once.
	AddAll(ctx context.Context, shipments []*shipment.Shipment) error

	// GetByOrder retrieves every shipment committed against the given order,
	// ordered by shipped time ascending.
	GetByOrder(ctx context.Context, orderID int) ([]*shipment.Shipment, error)

	// Count returns the number of persisted shipments.
	Count(ctx context.Context) (int64, error)
}
