package ports

import (
	"context"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/shipment"
)

// ShipmentNotifier publishes a "package shipped" notification for a committed
// shipment. In a full deployment this reaches a carrier integration through a
// message broker; notification is fire-and-forget and sits outside the
// consistency boundary, so a failed publish never unwinds a committed package.
type ShipmentNotifier interface {
	ShipmentDispatched(ctx context.Context, s *shipment.Shipment) error
}
