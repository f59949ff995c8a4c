package commands

import (
	"errors"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	ErrProcessOrderCommandIsNotConstructed = errors.New(
		"ProcessOrderCommand must be created via NewProcessOrderCommand constructor",
	)
	ErrOrderIDIsInvalid = errors.New("order id must be greater than 0")
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// ProcessOrderCommand represents a request to admit an order for
// fulfillment. The order ships immediately to the extent current stock
// allows; the remainder stays queued.
type ProcessOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int
	items   []order.Item

	guard guard.ConstructorGuard
}

// NewProcessOrderCommand creates a command for the given order id and item
// list. The item list must be non-empty; per-item validation (positive
// quantities, one line per product) happens when the items are constructed
// and again inside the order aggregate.
func NewProcessOrderCommand(orderID int, items []order.Item) (ProcessOrderCommand, error) {
	cmd := ProcessOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return ProcessOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessOrderCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderCommandIsNotConstructed)
}

// OrderID returns the externally assigned order identifier.
func (c ProcessOrderCommand) OrderID() int {
	return c.orderID
}

// Items returns a copy of the requested item list.
func (c ProcessOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *ProcessOrderCommand) setOrderID(orderID int) error {
	if orderID <= 0 {
		return ErrOrderIDIsInvalid
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}
