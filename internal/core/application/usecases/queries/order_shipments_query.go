package queries

import (
	"errors"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	ErrOrderShipmentsQueryIsNotConstructed = errors.New(
		"OrderShipmentsQuery must be created via NewOrderShipmentsQuery constructor",
	)
)

// OrderShipmentsQuery retrieves the shipment history of one order, oldest
// first.
type OrderShipmentsQuery struct { //nolint:recvcheck //using for validation
	orderID int

	guard guard.ConstructorGuard
}

// NewOrderShipmentsQuery creates a query for the given order id.
func NewOrderShipmentsQuery(orderID int) (OrderShipmentsQuery, error) {
	if orderID <= 0 {
		return OrderShipmentsQuery{}, ErrQueryOrderIDIsInvalid
	}

	return OrderShipmentsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q OrderShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrOrderShipmentsQueryIsNotConstructed)
}

// OrderID returns the queried order identifier.
func (q OrderShipmentsQuery) OrderID() int {
	return q.orderID
}

// OrderShipmentsQueryResponse represents one committed shipment in the
// read model.
type OrderShipmentsQueryResponse struct {
	ShipmentID     string
	OrderID        int
	Lines          []ItemView
	TotalMassGrams int
	ShippedAt      time.Time
}
