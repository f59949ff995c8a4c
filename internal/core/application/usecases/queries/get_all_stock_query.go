package queries

import (
	"errors"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	ErrGetAllStockQueryIsNotConstructed = errors.New(
		"GetAllStockQuery must be created via NewGetAllStockQuery constructor",
	)
)

// GetAllStockQuery retrieves the stock level of every catalog product.
type GetAllStockQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllStockQuery creates a parameterless query for the complete stock
// list.
func NewGetAllStockQuery() GetAllStockQuery {
	return GetAllStockQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllStockQuery) Validate() error {
	return q.guard.Validate(ErrGetAllStockQueryIsNotConstructed)
}

// ProductStockQueryResponse represents one product's stock level in the
// read model.
type ProductStockQueryResponse struct {
	ProductID       int
	Name            string
	UnitMassGrams   int
	QuantityInStock int
}
