package queries

import (
	"errors"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	ErrSystemStatusQueryIsNotConstructed = errors.New(
		"SystemStatusQuery must be created via NewSystemStatusQuery constructor",
	)
)

// SystemStatusQuery retrieves an operational snapshot of the whole system:
// catalog size, order counts by status and total shipments.
type SystemStatusQuery struct {
	guard guard.ConstructorGuard
}

// NewSystemStatusQuery creates a parameterless system status query.
func NewSystemStatusQuery() SystemStatusQuery {
	return SystemStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q SystemStatusQuery) Validate() error {
	return q.guard.Validate(ErrSystemStatusQueryIsNotConstructed)
}

// SystemStatusQueryResponse represents the system snapshot in the read
// model. Initialized mirrors the catalog's persisted state: a non-empty
// product table means the founding list has been loaded.
type SystemStatusQueryResponse struct {
	Initialized          bool
	ProductCount         int64
	TotalUnitsInStock    int64
	OrderCount           int64
	PendingOrders        int64
	PartiallyFulfilled   int64
	FulfilledOrders      int64
	ShipmentCount        int64
	TotalShippedMassGrams int64
}
