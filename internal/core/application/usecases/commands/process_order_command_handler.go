package commands

import (
	"context"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
)

// ProcessOrderCommandHandler handles order admission. The allocator runs a
// fulfillment attempt as part of the same call, so the returned aggregate
// already reflects whatever shipped from current stock.
type ProcessOrderCommandHandler struct {
	submitter OrderSubmitter
}

// NewProcessOrderCommandHandler creates a handler for order admission.
func NewProcessOrderCommandHandler(submitter OrderSubmitter) ProcessOrderCommandHandler {
	return ProcessOrderCommandHandler{
		submitter: submitter,
	}
}

// Handle processes the order command and returns the order as it stands
// after the immediate fulfillment attempt. Insufficient stock is not an
// error; resubmitting an id that already has shipments is.
func (h ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.submitter.SubmitOrder(ctx, cmd.OrderID(), cmd.Items())
}
