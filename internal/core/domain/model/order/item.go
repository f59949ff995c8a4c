package order

import (
	"fmt"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"
)

// Item is a value object pairing a product identifier with a unit quantity.
// It appears in three roles on an order: requested items, shipped items, and
// the lines of an individual shipment being recorded.
type Item struct {
	productID int
	quantity  int
}

// NewItem creates an Item. The product id must be non-negative and the
// quantity strictly positive.
func NewItem(productID, quantity int) (Item, error) {
	if productID < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"productID is invalid",
			fmt.Errorf("%d is negative", productID),
		)
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return Item{productID: productID, quantity: quantity}, nil
}

// ProductID returns the externally assigned product identifier.
func (i Item) ProductID() int {
	return i.productID
}

// Quantity returns the number of units.
func (i Item) Quantity() int {
	return i.quantity
}

// mergeItems adds the quantities in addition into base, summing entries for
// the same product and appending new ones. The result preserves the relative
// order of first appearance.
func mergeItems(base, addition []Item) []Item {
	merged := make([]Item, len(base))
	copy(merged, base)

	for _, add := range addition {
		found := false
		for idx, existing := range merged {
			if existing.productID == add.productID {
				merged[idx].quantity += add.quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, add)
		}
	}

	return merged
}

// quantityFor returns the quantity for the given product in items, or zero.
func quantityFor(items []Item, productID int) int {
	for _, item := range items {
		if item.productID == productID {
			return item.quantity
		}
	}
	return 0
}
