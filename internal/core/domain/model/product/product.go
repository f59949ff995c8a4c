package product

import (
	"errors"
	"fmt"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct or RestoreProduct factory methods.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrInsufficientStock indicates that a reservation asked for more units
	// than are currently in stock. Stock is left untouched when this occurs.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product represents a weight-bearing inventory item in the catalog.
// It is an entity identified by an externally assigned integer id and
// owns the current stock count for that item.
//
// Product enforces these invariants:
//   - Identifier is non-negative and unique within the catalog
//   - Unit mass is a positive number of grams
//   - Stock count is never negative
//
// Products are created with zero stock; stock only changes through
// Restock (increment) and Reserve (decrement).
type Product struct {
	// id is the externally assigned product identifier
	id int

	// name is the human-readable display name
	name string

	// unitMassGrams is the mass of a single unit in grams
	unitMassGrams int

	// quantityInStock is the current number of units available
	quantityInStock int

	guard guard.ConstructorGuard
}

// NewProduct creates a Product with the given identifier, display name and
// unit mass. The product starts with zero stock; initialization never seeds
// inventory.
//
// Returns an aggregated validation error if the id is negative, the name is
// empty, or the unit mass is not positive.
func NewProduct(id int, name string, unitMassGrams int) (*Product, error) {
	p := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setUnitMassGrams(unitMassGrams),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistent storage, including
// its stock count at the time of persistence. The restored product behaves
// identically to one mutated through normal catalog operations.
func RestoreProduct(id int, name string, unitMassGrams, quantityInStock int) (*Product, error) {
	p := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setUnitMassGrams(unitMassGrams),
		p.setQuantityInStock(quantityInStock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Product was created through a factory method.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// IsEqual compares two products by their identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id == other.id
}

// ID returns the externally assigned product identifier.
func (p *Product) ID() int {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// UnitMassGrams returns the mass of a single unit in grams.
func (p *Product) UnitMassGrams() int {
	return p.unitMassGrams
}

// QuantityInStock returns the current number of units available.
func (p *Product) QuantityInStock() int {
	return p.quantityInStock
}

// Restock increases the stock count by the given quantity.
// The quantity must be positive. Restock is not idempotent: applying the
// same delta twice doubles the increment, so callers needing exactly-once
// semantics must deduplicate by an external event id.
func (p *Product) Restock(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	p.quantityInStock += quantity
	return nil
}

// Reserve decreases the stock count by the given quantity.
// The quantity must be positive and must not exceed the current stock;
// on ErrInsufficientStock the stock count is left unchanged.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	if quantity > p.quantityInStock {
		return fmt.Errorf("%w: product %d has %d units, %d requested",
			ErrInsufficientStock, p.id, p.quantityInStock, quantity)
	}

	p.quantityInStock -= quantity
	return nil
}

// CanReserve reports whether the given quantity could be reserved right now.
func (p *Product) CanReserve(quantity int) bool {
	return quantity > 0 && quantity <= p.quantityInStock
}

func (p *Product) setID(id int) error {
	if id < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"id is invalid",
			fmt.Errorf("%d is negative", id),
		)
	}

	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}

	p.name = name
	return nil
}

func (p *Product) setUnitMassGrams(unitMassGrams int) error {
	if unitMassGrams <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitMassGrams is invalid",
			fmt.Errorf("%d is not greater than 0", unitMassGrams),
		)
	}

	p.unitMassGrams = unitMassGrams
	return nil
}

func (p *Product) setQuantityInStock(quantityInStock int) error {
	if quantityInStock < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantityInStock is invalid",
			fmt.Errorf("%d is negative", quantityInStock),
		)
	}

	p.quantityInStock = quantityInStock
	return nil
}
