package queries

import (
	"context"

	"gorm.io/gorm"
)

// SystemStatusQueryHandler assembles the operational snapshot from the
// database.
type SystemStatusQueryHandler struct {
	db *gorm.DB
}

// NewSystemStatusQueryHandler creates a handler for system status queries.
func NewSystemStatusQueryHandler(db *gorm.DB) SystemStatusQueryHandler {
	return SystemStatusQueryHandler{db: db}
}

// Handle executes the snapshot query.
func (h SystemStatusQueryHandler) Handle(
	ctx context.Context,
	query SystemStatusQuery,
) (SystemStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SystemStatusQueryResponse{}, err
	}

	var response SystemStatusQueryResponse

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COALESCE(SUM(quantity_in_stock), 0) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = 'Pending'),
			(SELECT COUNT(*) FROM orders WHERE status = 'PartiallyFulfilled'),
			(SELECT COUNT(*) FROM orders WHERE status = 'Fulfilled'),
			(SELECT COUNT(*) FROM shipments),
			(SELECT COALESCE(SUM(total_mass_grams), 0) FROM shipments)
	`).Row().Scan(
		&response.ProductCount,
		&response.TotalUnitsInStock,
		&response.OrderCount,
		&response.PendingOrders,
		&response.PartiallyFulfilled,
		&response.FulfilledOrders,
		&response.ShipmentCount,
		&response.TotalShippedMassGrams,
	)
	if err != nil {
		return SystemStatusQueryResponse{}, err
	}

	response.Initialized = response.ProductCount > 0
	return response, nil
}
