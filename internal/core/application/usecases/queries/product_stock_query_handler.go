package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"

	"gorm.io/gorm"
)

// ProductStockQueryHandler retrieves one product's stock level from the
// database.
type ProductStockQueryHandler struct {
	db *gorm.DB
}

// NewProductStockQueryHandler creates a handler for single-product stock
// queries.
func NewProductStockQueryHandler(db *gorm.DB) ProductStockQueryHandler {
	return ProductStockQueryHandler{db: db}
}

// Handle executes the query. Returns an errs.ObjectNotFoundError when the
// product id is not in the catalog.
func (h ProductStockQueryHandler) Handle(
	ctx context.Context,
	query ProductStockQuery,
) (ProductStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ProductStockQueryResponse{}, err
	}

	var product ProductStockQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			unit_mass_grams,
			quantity_in_stock
		FROM products
		WHERE id = ?
	`, query.ProductID()).Row().Scan(
		&product.ProductID,
		&product.Name,
		&product.UnitMassGrams,
		&product.QuantityInStock,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductStockQueryResponse{}, errs.NewObjectNotFoundError("product", query.ProductID())
		}
		return ProductStockQueryResponse{}, err
	}

	return product, nil
}
