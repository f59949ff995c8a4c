package queries

import (
	"context"

	"gorm.io/gorm"
)

// PendingQueueQueryHandler retrieves the fulfillment queue from the
// database in the exact order restocks traverse it: creation time
// ascending, order id as the tie break.
type PendingQueueQueryHandler struct {
	db *gorm.DB
}

// NewPendingQueueQueryHandler creates a handler for fulfillment queue
// queries.
func NewPendingQueueQueryHandler(db *gorm.DB) PendingQueueQueryHandler {
	return PendingQueueQueryHandler{db: db}
}

// Handle executes the query.
func (h PendingQueueQueryHandler) Handle(
	ctx context.Context,
	query PendingQueueQuery,
) ([]OrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanOrderRows(h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			shipment_count,
			requested_items,
			shipped_items
		FROM orders
		WHERE status IN ('Pending', 'PartiallyFulfilled')
		ORDER BY created_at, id
	`))
}
