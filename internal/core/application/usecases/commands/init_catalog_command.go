package commands

import (
	"errors"
	"fmt"

	"github.com/jpirumvaa/fulfillment-system/internal/core/application/catalog"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	ErrInitCatalogCommandIsNotConstructed = errors.New(
		"InitCatalogCommand must be created via NewInitCatalogCommand constructor",
	)
	ErrProductsAreRequired  = errors.New("at least one product is required")
	ErrProductIDIsInvalid   = errors.New("product id must not be negative")
	ErrProductNameIsRequired = errors.New("product name is required")
	ErrUnitMassIsInvalid    = errors.New("unit mass must be greater than 0")
)

// InitCatalogCommand represents a request to load the founding product
// list. Every product starts with zero stock; inventory arrives only
// through restocks.
type InitCatalogCommand struct { //nolint:recvcheck //using for validation
	products []catalog.ProductDescriptor

	guard guard.ConstructorGuard
}

// NewInitCatalogCommand creates a command carrying the founding product
// list. Validates that the list is non-empty and every entry has a
// non-negative id, a name and a positive unit mass. Returns an error if any
// validation fails.
func NewInitCatalogCommand(products []catalog.ProductDescriptor) (InitCatalogCommand, error) {
	cmd := InitCatalogCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setProducts(products); err != nil {
		return InitCatalogCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InitCatalogCommand) Validate() error {
	return c.guard.Validate(ErrInitCatalogCommandIsNotConstructed)
}

// Products returns a copy of the founding product list.
func (c InitCatalogCommand) Products() []catalog.ProductDescriptor {
	products := make([]catalog.ProductDescriptor, len(c.products))
	copy(products, c.products)
	return products
}

func (c *InitCatalogCommand) setProducts(products []catalog.ProductDescriptor) error {
	if len(products) == 0 {
		return ErrProductsAreRequired
	}

	for _, p := range products {
		if p.ID < 0 {
			return fmt.Errorf("%w: got %d", ErrProductIDIsInvalid, p.ID)
		}
		if p.Name == "" {
			return fmt.Errorf("%w: product %d", ErrProductNameIsRequired, p.ID)
		}
		if p.UnitMassGrams <= 0 {
			return fmt.Errorf("%w: product %d has %d", ErrUnitMassIsInvalid, p.ID, p.UnitMassGrams)
		}
	}

	c.products = make([]catalog.ProductDescriptor, len(products))
	copy(c.products, products)
	return nil
}
