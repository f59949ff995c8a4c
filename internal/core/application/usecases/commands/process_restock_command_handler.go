package commands

import (
	"context"
)

// ProcessRestockCommandHandler handles stock deliveries. Applying a restock
// also walks the pending queue oldest-first, so queued orders claim the new
// stock in submission order.
type ProcessRestockCommandHandler struct {
	applier RestockApplier
}

// NewProcessRestockCommandHandler creates a handler for stock deliveries.
func NewProcessRestockCommandHandler(applier RestockApplier) ProcessRestockCommandHandler {
	return ProcessRestockCommandHandler{
		applier: applier,
	}
}

// Handle processes the restock command.
func (h ProcessRestockCommandHandler) Handle(ctx context.Context, cmd ProcessRestockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.applier.ApplyRestock(ctx, cmd.Deltas())
}
