package order_test

import (
	"testing"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.PartiallyFulfilled, order.Fulfilled} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("invalid statuses", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "PartiallyFulfilled", order.PartiallyFulfilled.String())
	assert.Equal(t, "Fulfilled", order.Fulfilled.String())
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Fulfilled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.PartiallyFulfilled.IsTerminal())
}
