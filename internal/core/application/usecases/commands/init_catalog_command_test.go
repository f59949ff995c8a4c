package commands_test

import (
	"testing"

	"github.com/jpirumvaa/fulfillment-system/internal/core/application/catalog"
	"github.com/jpirumvaa/fulfillment-system/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitCatalogCommand_Success(t *testing.T) {
	cmd, err := commands.NewInitCatalogCommand([]catalog.ProductDescriptor{
		{ID: 1, Name: "Bolt", UnitMassGrams: 100},
	})
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Len(t, cmd.Products(), 1)
}

func TestNewInitCatalogCommand_AcceptsZeroID(t *testing.T) {
	cmd, err := commands.NewInitCatalogCommand([]catalog.ProductDescriptor{
		{ID: 0, Name: "Anchor", UnitMassGrams: 700},
	})
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, 0, cmd.Products()[0].ID)
}

func TestNewInitCatalogCommand_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		products []catalog.ProductDescriptor
		wantErr  error
	}{
		{"empty list", nil, commands.ErrProductsAreRequired},
		{"negative id", []catalog.ProductDescriptor{{ID: -1, Name: "Bolt", UnitMassGrams: 100}}, commands.ErrProductIDIsInvalid},
		{"missing name", []catalog.ProductDescriptor{{ID: 1, Name: "", UnitMassGrams: 100}}, commands.ErrProductNameIsRequired},
		{"zero mass", []catalog.ProductDescriptor{{ID: 1, Name: "Bolt", UnitMassGrams: 0}}, commands.ErrUnitMassIsInvalid},
		{"negative mass", []catalog.ProductDescriptor{{ID: 1, Name: "Bolt", UnitMassGrams: -5}}, commands.ErrUnitMassIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewInitCatalogCommand(tt.products)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInitCatalogCommand_NotConstructed(t *testing.T) {
	var cmd commands.InitCatalogCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrInitCatalogCommandIsNotConstructed)
}
