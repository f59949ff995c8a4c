package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllStockQueryHandler retrieves every product's stock level from the
// database.
type GetAllStockQueryHandler struct {
	db *gorm.DB
}

// NewGetAllStockQueryHandler creates a handler for the complete stock
// list.
func NewGetAllStockQueryHandler(db *gorm.DB) GetAllStockQueryHandler {
	return GetAllStockQueryHandler{db: db}
}

// Handle executes the query and returns products sorted by id.
func (h GetAllStockQueryHandler) Handle(
	ctx context.Context,
	query GetAllStockQuery,
) ([]ProductStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]ProductStockQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			unit_mass_grams,
			quantity_in_stock
		FROM products
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var product ProductStockQueryResponse
		if err = rows.Scan(
			&product.ProductID,
			&product.Name,
			&product.UnitMassGrams,
			&product.QuantityInStock,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
