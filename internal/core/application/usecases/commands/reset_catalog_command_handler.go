package commands

import (
	"context"
)

// ResetCatalogCommandHandler handles catalog resets.
type ResetCatalogCommandHandler struct {
	resetter CatalogResetter
}

// NewResetCatalogCommandHandler creates a handler for catalog resets.
func NewResetCatalogCommandHandler(resetter CatalogResetter) ResetCatalogCommandHandler {
	return ResetCatalogCommandHandler{
		resetter: resetter,
	}
}

// Handle processes the reset command.
func (h ResetCatalogCommandHandler) Handle(ctx context.Context, cmd ResetCatalogCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.resetter.Reset(ctx)
}
