package commands

import (
	"errors"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	ErrResetCatalogCommandIsNotConstructed = errors.New(
		"ResetCatalogCommand must be created via NewResetCatalogCommand constructor",
	)
)

// ResetCatalogCommand represents a request to clear the catalog so a fresh
// founding list can be loaded. Used for controlled re-initialization only.
type ResetCatalogCommand struct {
	guard guard.ConstructorGuard
}

// NewResetCatalogCommand creates a parameterless reset command.
func NewResetCatalogCommand() ResetCatalogCommand {
	return ResetCatalogCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ResetCatalogCommand) Validate() error {
	return c.guard.Validate(ErrResetCatalogCommandIsNotConstructed)
}
