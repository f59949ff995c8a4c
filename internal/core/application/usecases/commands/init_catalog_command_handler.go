package commands

import (
	"context"
)

// InitCatalogCommandHandler handles the one-time loading of the founding
// product list into the catalog.
type InitCatalogCommandHandler struct {
	initializer CatalogInitializer
}

// NewInitCatalogCommandHandler creates a handler for catalog
// initialization.
func NewInitCatalogCommandHandler(initializer CatalogInitializer) InitCatalogCommandHandler {
	return InitCatalogCommandHandler{
		initializer: initializer,
	}
}

// Handle processes the initialization command. A second initialization
// without an intervening reset fails with catalog.ErrAlreadyInitialized.
func (h InitCatalogCommandHandler) Handle(ctx context.Context, cmd InitCatalogCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.initializer.InitCatalog(ctx, cmd.Products())
}
