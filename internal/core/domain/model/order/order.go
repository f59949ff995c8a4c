package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDuplicateProduct indicates that a requested item list names the same
	// product more than once. Each order carries one entry per product.
	ErrDuplicateProduct = errors.New("duplicate product in item list")

	// ErrOrderHasShipments is returned when a resubmission targets an order
	// that has already shipped at least one package. Replacing such an
	// order's requested items would silently discard its shipped-quantity
	// bookkeeping while reserved stock stays decremented, so it is rejected.
	ErrOrderHasShipments = errors.New("order already has shipments and cannot be resubmitted")

	// ErrOrderAlreadyFulfilled indicates an attempt to record a shipment
	// against an order in the terminal Fulfilled status.
	ErrOrderAlreadyFulfilled = errors.New("order is already fulfilled")

	// ErrShipmentExceedsRequested indicates that recording the shipment would
	// push some product's shipped quantity above its requested quantity.
	// The order is left untouched when this occurs.
	ErrShipmentExceedsRequested = errors.New("shipment exceeds requested quantity")
)

// Order is the aggregate root tracking what a customer asked for and what
// has physically shipped so far. It owns the invariant that, per product,
// shipped quantity never exceeds requested quantity, and derives its status
// from that relationship rather than having it set from outside.
//
// Orders are identified by an externally assigned integer id. The creation
// timestamp doubles as the FIFO key used to prioritize older unmet orders
// when stock arrives.
type Order struct {
	// id is the externally assigned order identifier
	id int

	// requestedItems holds one entry per product, quantity > 0
	requestedItems []Item

	// shippedItems accumulates quantities across committed shipments
	shippedItems []Item

	// status is derived from requested vs shipped; Fulfilled is terminal
	status Status

	// shipmentCount is the number of packages committed so far
	shipmentCount int

	// createdAt orders the fulfillment queue, earliest first
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an Order in Pending status with the given requested items.
// The item list must be non-empty and name each product at most once.
func NewOrder(id int, requestedItems []Item, createdAt time.Time) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRequestedItems(requestedItems),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, including its
// shipped quantities and shipment count. The status is re-derived from the
// item sets rather than trusted from the stored value, keeping the invariant
// authoritative even across schema drift.
func RestoreOrder(id int, requestedItems, shippedItems []Item, shipmentCount int, createdAt time.Time) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRequestedItems(requestedItems),
		o.setShippedItems(shippedItems),
		o.setShipmentCount(shipmentCount),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.status = deriveStatus(o.requestedItems, o.shippedItems)
	return o, nil
}

// Validate ensures the Order was created through a factory method.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the externally assigned order identifier.
func (o *Order) ID() int {
	return o.id
}

// RequestedItems returns a copy of the requested item list.
func (o *Order) RequestedItems() []Item {
	items := make([]Item, len(o.requestedItems))
	copy(items, o.requestedItems)
	return items
}

// ShippedItems returns a copy of the accumulated shipped item list.
func (o *Order) ShippedItems() []Item {
	items := make([]Item, len(o.shippedItems))
	copy(items, o.shippedItems)
	return items
}

// Status returns the current derived status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ShipmentCount returns the number of packages committed against the order.
func (o *Order) ShipmentCount() int {
	return o.shipmentCount
}

// CreatedAt returns the order's creation timestamp, the FIFO key.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// RemainingItems returns requested minus shipped per product, omitting
// products with a zero remainder. An empty result means the order is
// fully covered.
func (o *Order) RemainingItems() []Item {
	remaining := make([]Item, 0, len(o.requestedItems))
	for _, req := range o.requestedItems {
		shipped := quantityFor(o.shippedItems, req.productID)
		if rest := req.quantity - shipped; rest > 0 {
			remaining = append(remaining, Item{productID: req.productID, quantity: rest})
		}
	}
	return remaining
}

// ApplyShipment merges the given package lines into the shipped items,
// increments the shipment count by one, and re-derives the status.
//
// Every line is validated before any mutation: the product must be part of
// the requested items and the merged shipped quantity must not exceed the
// requested quantity. On any violation the order is left unchanged.
func (o *Order) ApplyShipment(lines []Item) error {
	if o.status.IsTerminal() {
		return ErrOrderAlreadyFulfilled
	}
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines are required")
	}

	for _, line := range lines {
		requested := quantityFor(o.requestedItems, line.productID)
		if requested == 0 {
			return fmt.Errorf("%w: product %d is not part of order %d",
				ErrShipmentExceedsRequested, line.productID, o.id)
		}

		shipped := quantityFor(o.shippedItems, line.productID)
		if shipped+line.quantity > requested {
			return fmt.Errorf("%w: product %d has %d of %d shipped, %d more offered",
				ErrShipmentExceedsRequested, line.productID, shipped, requested, line.quantity)
		}
	}

	o.shippedItems = mergeItems(o.shippedItems, lines)
	o.shipmentCount++
	o.status = deriveStatus(o.requestedItems, o.shippedItems)
	return nil
}

// ReplaceItems swaps the requested item list for a resubmitted order.
// Only orders with no committed shipments may be resubmitted; the status
// stays Pending. Orders that have already shipped packages return
// ErrOrderHasShipments.
func (o *Order) ReplaceItems(requestedItems []Item) error {
	if o.shipmentCount > 0 {
		return fmt.Errorf("%w: order %d has %d shipments", ErrOrderHasShipments, o.id, o.shipmentCount)
	}

	if err := o.setRequestedItems(requestedItems); err != nil {
		return err
	}

	o.status = Pending
	return nil
}

func (o *Order) setID(id int) error {
	if id < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"id is invalid",
			fmt.Errorf("%d is negative", id),
		)
	}
	o.id = id
	return nil
}

func (o *Order) setRequestedItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("requestedItems are required")
	}

	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"requestedItems are invalid",
				fmt.Errorf("product %d has quantity %d", item.productID, item.quantity),
			)
		}
		if _, dup := seen[item.productID]; dup {
			return fmt.Errorf("%w: product %d", ErrDuplicateProduct, item.productID)
		}
		seen[item.productID] = struct{}{}
	}

	o.requestedItems = make([]Item, len(items))
	copy(o.requestedItems, items)
	return nil
}

func (o *Order) setShippedItems(items []Item) error {
	for _, item := range items {
		if item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"shippedItems are invalid",
				fmt.Errorf("product %d has quantity %d", item.productID, item.quantity),
			)
		}
		if quantityFor(o.requestedItems, item.productID) < item.quantity {
			return fmt.Errorf("%w: product %d", ErrShipmentExceedsRequested, item.productID)
		}
	}

	o.shippedItems = make([]Item, len(items))
	copy(o.shippedItems, items)
	return nil
}

func (o *Order) setShipmentCount(count int) error {
	if count < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipmentCount is invalid",
			fmt.Errorf("%d is negative", count),
		)
	}
	o.shipmentCount = count
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt is required")
	}
	o.createdAt = createdAt
	return nil
}
