package commands_test

import (
	"testing"

	"github.com/jpirumvaa/fulfillment-system/internal/core/application/usecases/commands"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, productID, quantity int) order.Item {
	t.Helper()
	item, err := order.NewItem(productID, quantity)
	require.NoError(t, err)
	return item
}

func TestNewProcessOrderCommand_Success(t *testing.T) {
	cmd, err := commands.NewProcessOrderCommand(101, []order.Item{mustItem(t, 1, 2)})
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, 101, cmd.OrderID())
	assert.Len(t, cmd.Items(), 1)
}

func TestNewProcessOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewProcessOrderCommand(0, []order.Item{mustItem(t, 1, 2)})
	require.ErrorIs(t, err, commands.ErrOrderIDIsInvalid)

	_, err = commands.NewProcessOrderCommand(-1, []order.Item{mustItem(t, 1, 2)})
	require.ErrorIs(t, err, commands.ErrOrderIDIsInvalid)
}

func TestNewProcessOrderCommand_EmptyItems(t *testing.T) {
	_, err := commands.NewProcessOrderCommand(101, nil)
	require.ErrorIs(t, err, commands.ErrItemsAreRequired)
}

func TestProcessOrderCommand_NotConstructed(t *testing.T) {
	var cmd commands.ProcessOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrProcessOrderCommandIsNotConstructed)
}
