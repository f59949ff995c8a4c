// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the order
// aggregate, storing item lists as jsonb columns and indexing by status and
// creation time for queue traversal.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
)

// ItemDTO is the JSON shape of one item line inside a jsonb column.
type ItemDTO struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// ItemsJSON maps a list of item lines onto a single jsonb column.
type ItemsJSON []ItemDTO

// GormDataType tells GORM to migrate the column as jsonb.
func (ItemsJSON) GormDataType() string {
	return "jsonb"
}

// Value serializes the item list for storage.
func (j ItemsJSON) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal([]ItemDTO{})
	}
	return json.Marshal(j)
}

// Scan deserializes the item list from storage.
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

// OrderDTO represents the database structure for persisting order
// aggregates. Order ids are externally assigned. The status column exists
// for the read side and the unfulfilled scan; the aggregate re-derives
// status from the item lists on restore.
type OrderDTO struct {
	ID             int       `gorm:"primaryKey;autoIncrement:false"`
	RequestedItems ItemsJSON `gorm:"type:jsonb"`
	ShippedItems   ItemsJSON `gorm:"type:jsonb"`
	Status         string    `gorm:"type:varchar(32);index:idx_orders_status_created_at,priority:1"`
	ShipmentCount  int
	CreatedAt      time.Time `gorm:"index:idx_orders_status_created_at,priority:2"`
}

// TableName specifies the database table name for order aggregates.
func (OrderDTO) TableName() string {
	return "orders"
}

func itemsFromDomain(items []order.Item) ItemsJSON {
	dtos := make(ItemsJSON, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ItemDTO{ProductID: item.ProductID(), Quantity: item.Quantity()})
	}
	return dtos
}

func itemsToDomain(dtos ItemsJSON) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := order.NewItem(dto.ProductID, dto.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:             o.ID(),
		RequestedItems: itemsFromDomain(o.RequestedItems()),
		ShippedItems:   itemsFromDomain(o.ShippedItems()),
		Status:         o.Status().String(),
		ShipmentCount:  o.ShipmentCount(),
		CreatedAt:      o.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order aggregate using
// RestoreOrder, which re-derives status from the item lists.
func toDomain(dto OrderDTO) (*order.Order, error) {
	requested, err := itemsToDomain(dto.RequestedItems)
	if err != nil {
		return nil, err
	}
	shipped, err := itemsToDomain(dto.ShippedItems)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(dto.ID, requested, shipped, dto.ShipmentCount, dto.CreatedAt)
}
