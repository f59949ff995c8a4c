// Package shipmentrepo provides data transfer objects and mapping functions
// for the append-only shipment log. Shipment lines are stored as a jsonb
// column; rows are never updated after insert.
package shipmentrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/kernel"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ItemDTO is the JSON shape of one shipment line inside the jsonb column.
type ItemDTO struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// ItemsJSON maps a list of shipment lines onto a single jsonb column.
type ItemsJSON []ItemDTO

// GormDataType tells GORM to migrate the column as jsonb.
func (ItemsJSON) GormDataType() string {
	return "jsonb"
}

// Value serializes the line list for storage.
func (j ItemsJSON) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal([]ItemDTO{})
	}
	return json.Marshal(j)
}

// Scan deserializes the line list from storage.
func (j *ItemsJSON) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// ShipmentDTO represents the database structure for persisting shipments.
// The composite index supports the per-order history read ordered by ship
// time.
type ShipmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        int       `gorm:"index:idx_shipments_order_shipped_at,priority:1"`
	Lines          ItemsJSON `gorm:"type:jsonb"`
	TotalMassGrams int
	ShippedAt      time.Time `gorm:"index:idx_shipments_order_shipped_at,priority:2"`
}

// TableName specifies the database table name for shipments.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment to its database representation.
func fromDomain(s *shipment.Shipment) ShipmentDTO {
	lines := make(ItemsJSON, 0, len(s.Lines()))
	for _, line := range s.Lines() {
		lines = append(lines, ItemDTO{ProductID: line.ProductID(), Quantity: line.Quantity()})
	}

	return ShipmentDTO{
		ID:             s.ID().Bytes(),
		OrderID:        s.OrderID(),
		Lines:          lines,
		TotalMassGrams: s.TotalMassGrams(),
		ShippedAt:      s.ShippedAt(),
	}
}

// toDomain converts a database DTO to a shipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Item, 0, len(dto.Lines))
	for _, line := range dto.Lines {
		item, itemErr := order.NewItem(line.ProductID, line.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		lines = append(lines, item)
	}

	return shipment.RestoreShipment(id, dto.OrderID, lines, dto.TotalMassGrams, dto.ShippedAt)
}
