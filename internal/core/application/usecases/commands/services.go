// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: constructor
// validation, then delegation to the owning application component.
package commands

import (
	"context"

	"github.com/jpirumvaa/fulfillment-system/internal/core/application/catalog"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
)

// Consumer-side interfaces over the application components. Handlers depend
// on these rather than on the concrete catalog and allocator types, keeping
// command handlers mockable in isolation.
type (
	// CatalogInitializer accepts the founding product list.
	CatalogInitializer interface {
		InitCatalog(ctx context.Context, descriptors []catalog.ProductDescriptor) error
	}

	// CatalogResetter clears the catalog for controlled re-initialization.
	CatalogResetter interface {
		Reset(ctx context.Context) error
	}

	// OrderSubmitter admits an order and attempts immediate fulfillment.
	OrderSubmitter interface {
		SubmitOrder(ctx context.Context, orderID int, items []order.Item) (*order.Order, error)
	}

	// RestockApplier adds delivered stock and re-attempts queued orders.
	RestockApplier interface {
		ApplyRestock(ctx context.Context, deltas []catalog.StockDelta) error
	}
)
