package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"

	"gorm.io/gorm"
)

// OrderStatusQueryHandler retrieves one order's fulfillment progress from
// the database. Uses direct SQL for optimal read performance in the CQRS
// pattern.
type OrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewOrderStatusQueryHandler creates a handler for order status queries.
// Requires a GORM database connection for query execution.
func NewOrderStatusQueryHandler(db *gorm.DB) OrderStatusQueryHandler {
	return OrderStatusQueryHandler{db: db}
}

// Handle executes the query for a single order. Returns an
// errs.ObjectNotFoundError when the order id is unknown.
func (h OrderStatusQueryHandler) Handle(
	ctx context.Context,
	query OrderStatusQuery,
) (OrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderStatusQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			shipment_count,
			requested_items,
			shipped_items
		FROM orders
		WHERE id = ?
	`, query.OrderID()).Row()

	response, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderStatusQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
		}
		return OrderStatusQueryResponse{}, err
	}

	return response, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrderRow builds the order read model from one result row, decoding
// the jsonb item columns and computing the remaining quantities.
func scanOrderRow(row rowScanner) (OrderStatusQueryResponse, error) {
	var response OrderStatusQueryResponse
	var requestedRaw, shippedRaw []byte

	if err := row.Scan(
		&response.OrderID,
		&response.Status,
		&response.ShipmentCount,
		&requestedRaw,
		&shippedRaw,
	); err != nil {
		return OrderStatusQueryResponse{}, err
	}

	requested, err := itemsFromJSON(requestedRaw)
	if err != nil {
		return OrderStatusQueryResponse{}, err
	}
	shipped, err := itemsFromJSON(shippedRaw)
	if err != nil {
		return OrderStatusQueryResponse{}, err
	}

	response.RequestedItems = requested
	response.ShippedItems = shipped
	response.RemainingItems = remainingItems(requested, shipped)
	return response, nil
}

// remainingItems subtracts shipped quantities from requested ones, omitting
// fully covered products.
func remainingItems(requested, shipped []ItemView) []ItemView {
	shippedByProduct := make(map[int]int, len(shipped))
	for _, item := range shipped {
		shippedByProduct[item.ProductID] += item.Quantity
	}

	remaining := make([]ItemView, 0, len(requested))
	for _, item := range requested {
		left := item.Quantity - shippedByProduct[item.ProductID]
		if left > 0 {
			remaining = append(remaining, ItemView{ProductID: item.ProductID, Quantity: left})
		}
	}
	return remaining
}
