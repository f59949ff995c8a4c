// Package ports defines the persistence and notification contracts between
// the fulfillment core and its infrastructure adapters. These interfaces
// enable dependency inversion and testability: the in-memory components
// write through them without knowing the storage technology.
package ports

import (
	"context"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product entities.
// The catalog is the in-memory authority; the repository is its durable
// mirror, written through on every mutation and read back on recovery.
type ProductRepository interface {
	// Add persists a new product entity to storage.
	Add(ctx context.Context, p *product.Product) error

	// Update persists changes to an existing product entity.
	Update(ctx context.Context, p *product.Product) error

	// SaveAll persists the given products in one batched write. Used by
	// restock and reservation commits so a multi-product mutation costs a
	// single round trip.
	SaveAll(ctx context.Context, products []*product.Product) error

	// Get retrieves a product by its externally assigned identifier.
	Get(ctx context.Context, id int) (*product.Product, error)

	// GetAll retrieves every persisted product, used for catalog recovery.
	GetAll(ctx context.Context) ([]*product.Product, error)

	// Count returns the number of persisted products.
	Count(ctx context.Context) (int64, error)

	// DeleteAll removes every persisted product. Used only by catalog reset.
	DeleteAll(ctx context.Context) error
}
