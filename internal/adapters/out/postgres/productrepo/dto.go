// Package productrepo provides data transfer objects and mapping functions
// for product persistence. It implements the repository pattern for the
// product entity, handling conversion between domain entities and database
// representations.
package productrepo

import (
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/product"
)

// ProductDTO represents the database structure for persisting products.
// Product ids are externally assigned, so the primary key is never
// auto-generated.
type ProductDTO struct {
	ID              int `gorm:"primaryKey;autoIncrement:false"`
	Name            string
	UnitMassGrams   int
	QuantityInStock int
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain entity to its database representation.
func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:              p.ID(),
		Name:            p.Name(),
		UnitMassGrams:   p.UnitMassGrams(),
		QuantityInStock: p.QuantityInStock(),
	}
}

// toDomain converts a database DTO to a product domain entity.
func toDomain(dto ProductDTO) (*product.Product, error) {
	return product.RestoreProduct(dto.ID, dto.Name, dto.UnitMassGrams, dto.QuantityInStock)
}
