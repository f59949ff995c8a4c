package commands

import (
	"errors"
	"fmt"

	"github.com/jpirumvaa/fulfillment-system/internal/core/application/catalog"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	ErrProcessRestockCommandIsNotConstructed = errors.New(
		"ProcessRestockCommand must be created via NewProcessRestockCommand constructor",
	)
	ErrDeltasAreRequired = errors.New("at least one restock entry is required")
	ErrQuantityIsInvalid = errors.New("restock quantity must be greater than 0")
)

// ProcessRestockCommand represents a stock delivery. Quantities are
// validated here; unknown product ids are left for the catalog to skip with
// a warning, so one stale entry never rejects a whole delivery.
type ProcessRestockCommand struct { //nolint:recvcheck //using for validation
	deltas []catalog.StockDelta

	guard guard.ConstructorGuard
}

// NewProcessRestockCommand creates a command for the given delivery lines.
// Every entry needs a positive product id and a positive quantity.
func NewProcessRestockCommand(deltas []catalog.StockDelta) (ProcessRestockCommand, error) {
	cmd := ProcessRestockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDeltas(deltas); err != nil {
		return ProcessRestockCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessRestockCommand) Validate() error {
	return c.guard.Validate(ErrProcessRestockCommandIsNotConstructed)
}

// Deltas returns a copy of the delivery lines.
func (c ProcessRestockCommand) Deltas() []catalog.StockDelta {
	deltas := make([]catalog.StockDelta, len(c.deltas))
	copy(deltas, c.deltas)
	return deltas
}

func (c *ProcessRestockCommand) setDeltas(deltas []catalog.StockDelta) error {
	if len(deltas) == 0 {
		return ErrDeltasAreRequired
	}

	for _, d := range deltas {
		if d.ProductID < 0 {
			return fmt.Errorf("%w: got %d", ErrProductIDIsInvalid, d.ProductID)
		}
		if d.Quantity <= 0 {
			return fmt.Errorf("%w: product %d has %d", ErrQuantityIsInvalid, d.ProductID, d.Quantity)
		}
	}

	c.deltas = make([]catalog.StockDelta, len(deltas))
	copy(c.deltas, deltas)
	return nil
}
