package queries

import (
	"errors"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	ErrOrderStatusQueryIsNotConstructed = errors.New(
		"OrderStatusQuery must be created via NewOrderStatusQuery constructor",
	)
	ErrQueryOrderIDIsInvalid = errors.New("order id must be greater than 0")
)

// OrderStatusQuery retrieves a single order's fulfillment progress:
// derived status, requested and shipped quantities and the shipment count.
type OrderStatusQuery struct { //nolint:recvcheck //using for validation
	orderID int

	guard guard.ConstructorGuard
}

// NewOrderStatusQuery creates a query for the given order id.
func NewOrderStatusQuery(orderID int) (OrderStatusQuery, error) {
	if orderID <= 0 {
		return OrderStatusQuery{}, ErrQueryOrderIDIsInvalid
	}

	return OrderStatusQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q OrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrOrderStatusQueryIsNotConstructed)
}

// OrderID returns the queried order identifier.
func (q OrderStatusQuery) OrderID() int {
	return q.orderID
}

// OrderStatusQueryResponse represents one order in the read model.
type OrderStatusQueryResponse struct {
	OrderID        int
	Status         string
	ShipmentCount  int
	RequestedItems []ItemView
	ShippedItems   []ItemView
	RemainingItems []ItemView
}
