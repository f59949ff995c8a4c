package commands_test

import (
	"testing"

	"github.com/jpirumvaa/fulfillment-system/internal/core/application/catalog"
	"github.com/jpirumvaa/fulfillment-system/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessRestockCommand_Success(t *testing.T) {
	cmd, err := commands.NewProcessRestockCommand([]catalog.StockDelta{
		{ProductID: 1, Quantity: 5},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Len(t, cmd.Deltas(), 2)
}

func TestNewProcessRestockCommand_AcceptsZeroProductID(t *testing.T) {
	cmd, err := commands.NewProcessRestockCommand([]catalog.StockDelta{
		{ProductID: 0, Quantity: 2},
	})
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, 0, cmd.Deltas()[0].ProductID)
}

func TestNewProcessRestockCommand_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		deltas  []catalog.StockDelta
		wantErr error
	}{
		{"empty list", nil, commands.ErrDeltasAreRequired},
		{"negative product id", []catalog.StockDelta{{ProductID: -1, Quantity: 5}}, commands.ErrProductIDIsInvalid},
		{"zero quantity", []catalog.StockDelta{{ProductID: 1, Quantity: 0}}, commands.ErrQuantityIsInvalid},
		{"negative quantity", []catalog.StockDelta{{ProductID: 1, Quantity: -3}}, commands.ErrQuantityIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewProcessRestockCommand(tt.deltas)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProcessRestockCommand_NotConstructed(t *testing.T) {
	var cmd commands.ProcessRestockCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrProcessRestockCommandIsNotConstructed)
}
