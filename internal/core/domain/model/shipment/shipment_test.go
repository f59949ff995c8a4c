package shipment_test

import (
	"testing"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/kernel"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, productID, quantity int) order.Item {
	t.Helper()
	item, err := order.NewItem(productID, quantity)
	require.NoError(t, err)
	return item
}

func TestNewShipment(t *testing.T) {
	now := time.Now()
	lines := []order.Item{mustItem(t, 0, 2)}

	t.Run("should create shipment with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		s, err := shipment.NewShipment(id, 1, lines, 1400, now)

		require.NoError(t, err)
		assert.True(t, s.ID().IsEqual(id))
		assert.Equal(t, 1, s.OrderID())
		assert.Equal(t, 1400, s.TotalMassGrams())
		assert.Equal(t, now, s.ShippedAt())
		require.Len(t, s.Lines(), 1)
		require.NoError(t, s.Validate())
	})

	t.Run("should reject zero value id", func(t *testing.T) {
		var id kernel.UUID
		s, err := shipment.NewShipment(id, 1, lines, 1400, now)

		require.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("should reject negative order id", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), -1, lines, 1400, now)

		require.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("should reject empty lines", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), 1, nil, 1400, now)

		require.Error(t, err)
		assert.Nil(t, s)
		assert.Contains(t, err.Error(), "lines are required")
	})

	t.Run("should reject duplicate products in lines", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), 1, []order.Item{
			mustItem(t, 0, 1),
			mustItem(t, 0, 1),
		}, 1400, now)

		require.ErrorIs(t, err, shipment.ErrDuplicateProduct)
		assert.Nil(t, s)
	})

	t.Run("should reject non-positive mass", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), 1, lines, 0, now)

		require.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("should reject zero shipped time", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), 1, lines, 1400, time.Time{})

		require.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestShipment_Lines_ReturnsCopy(t *testing.T) {
	s, err := shipment.NewShipment(kernel.NewUUID(), 1, []order.Item{mustItem(t, 0, 2)}, 1400, time.Now())
	require.NoError(t, err)

	got := s.Lines()
	got[0] = mustItem(t, 9, 9)

	assert.Equal(t, 0, s.Lines()[0].ProductID(), "mutating the returned slice must not affect the shipment")
}

func TestShipment_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	lines := []order.Item{mustItem(t, 0, 2)}
	now := time.Now()

	s1, _ := shipment.NewShipment(id, 1, lines, 1400, now)
	s2, _ := shipment.NewShipment(id, 2, lines, 700, now)
	s3, _ := shipment.NewShipment(kernel.NewUUID(), 1, lines, 1400, now)

	assert.True(t, s1.IsEqual(s2), "identity is determined by id")
	assert.False(t, s1.IsEqual(s3))
	assert.False(t, s1.IsEqual(nil))
}

func TestShipment_Validate(t *testing.T) {
	t.Run("nil shipment is invalid", func(t *testing.T) {
		var s *shipment.Shipment
		require.ErrorIs(t, s.Validate(), shipment.ErrShipmentIsNotConstructed)
	})

	t.Run("zero value shipment is invalid", func(t *testing.T) {
		s := &shipment.Shipment{}
		require.ErrorIs(t, s.Validate(), shipment.ErrShipmentIsNotConstructed)
	})
}
