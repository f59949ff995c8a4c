package ports

import (
	"context"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The order ledger is the in-memory authority; the repository mirrors it.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its externally assigned identifier.
	Get(ctx context.Context, id int) (*order.Order, error)

	// GetAllUnfulfilled retrieves every order in Pending or PartiallyFulfilled
	// status, ordered by creation time ascending. This is the traversal order
	// used when a restock re-attempts queued orders, so older orders are
	// never starved by newer ones.
	GetAllUnfulfilled(ctx context.Context) ([]*order.Order, error)

	// GetAll retrieves every persisted order, used for ledger recovery.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// Count returns the number of persisted orders.
	Count(ctx context.Context) (int64, error)
}
