package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/core/application/usecases/commands"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderSubmitter struct{ mock.Mock }

func (m *MockOrderSubmitter) SubmitOrder(ctx context.Context, orderID int, items []order.Item) (*order.Order, error) {
	args := m.Called(ctx, orderID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func TestProcessOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	items := []order.Item{mustItem(t, 1, 2)}
	cmd, err := commands.NewProcessOrderCommand(101, items)
	require.NoError(t, err)

	submitted, err := order.NewOrder(101, items, time.Now())
	require.NoError(t, err)

	submitter := new(MockOrderSubmitter)
	submitter.On("SubmitOrder", ctx, 101, items).Return(submitted, nil).Once()

	h := commands.NewProcessOrderCommandHandler(submitter)
	o, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 101, o.ID())
	submitter.AssertExpectations(t)
}

func TestProcessOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	submitter := new(MockOrderSubmitter)

	h := commands.NewProcessOrderCommandHandler(submitter)
	_, err := h.Handle(ctx, commands.ProcessOrderCommand{}) // not constructed properly
	require.Error(t, err)
	submitter.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessOrderCommandHandler_Handle_ResubmitRejected(t *testing.T) {
	ctx := t.Context()
	items := []order.Item{mustItem(t, 1, 2)}
	cmd, err := commands.NewProcessOrderCommand(101, items)
	require.NoError(t, err)

	submitter := new(MockOrderSubmitter)
	submitter.On("SubmitOrder", ctx, 101, items).Return(nil, order.ErrOrderHasShipments).Once()

	h := commands.NewProcessOrderCommandHandler(submitter)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrOrderHasShipments)
}
