package queries

import (
	"context"

	"gorm.io/gorm"
)

// OrderShipmentsQueryHandler retrieves an order's shipment history from the
// database.
type OrderShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewOrderShipmentsQueryHandler creates a handler for shipment history
// queries.
func NewOrderShipmentsQueryHandler(db *gorm.DB) OrderShipmentsQueryHandler {
	return OrderShipmentsQueryHandler{db: db}
}

// Handle executes the query. An order with no shipments yields an empty
// list, not an error; unknown order ids are indistinguishable from orders
// that simply have not shipped.
func (h OrderShipmentsQueryHandler) Handle(
	ctx context.Context,
	query OrderShipmentsQuery,
) ([]OrderShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]OrderShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			lines,
			total_mass_grams,
			shipped_at
		FROM shipments
		WHERE order_id = ?
		ORDER BY shipped_at
	`, query.OrderID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var shipment OrderShipmentsQueryResponse
		var linesRaw []byte

		if err = rows.Scan(
			&shipment.ShipmentID,
			&shipment.OrderID,
			&linesRaw,
			&shipment.TotalMassGrams,
			&shipment.ShippedAt,
		); err != nil {
			return nil, err
		}

		lines, linesErr := itemsFromJSON(linesRaw)
		if linesErr != nil {
			return nil, linesErr
		}
		shipment.Lines = lines
		shipments = append(shipments, shipment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
