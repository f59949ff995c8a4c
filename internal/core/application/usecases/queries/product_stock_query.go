package queries

import (
	"errors"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	ErrProductStockQueryIsNotConstructed = errors.New(
		"ProductStockQuery must be created via NewProductStockQuery constructor",
	)
	ErrQueryProductIDIsInvalid = errors.New("product id must not be negative")
)

// ProductStockQuery retrieves a single product's stock level.
type ProductStockQuery struct { //nolint:recvcheck //using for validation
	productID int

	guard guard.ConstructorGuard
}

// NewProductStockQuery creates a query for the given product id.
func NewProductStockQuery(productID int) (ProductStockQuery, error) {
	if productID < 0 {
		return ProductStockQuery{}, ErrQueryProductIDIsInvalid
	}

	return ProductStockQuery{
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ProductStockQuery) Validate() error {
	return q.guard.Validate(ErrProductStockQueryIsNotConstructed)
}

// ProductID returns the queried product identifier.
func (q ProductStockQuery) ProductID() int {
	return q.productID
}
