// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS
// architecture. Handlers read the durable store directly with raw SQL and
// return read models shaped for the HTTP layer.
package queries

import "encoding/json"

// ItemView is the read-model shape of one item line. Both order item lists
// and shipment lines are stored as jsonb arrays of this shape.
type ItemView struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// itemsFromJSON decodes a jsonb item column into the read model.
func itemsFromJSON(raw []byte) ([]ItemView, error) {
	if len(raw) == 0 {
		return []ItemView{}, nil
	}

	var items []ItemView
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
