package queries_test

import (
	"testing"

	"github.com/jpirumvaa/fulfillment-system/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderStatusQuery(t *testing.T) {
	query, err := queries.NewOrderStatusQuery(101)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, 101, query.OrderID())
}

func TestNewOrderStatusQuery_InvalidID(t *testing.T) {
	_, err := queries.NewOrderStatusQuery(0)
	require.ErrorIs(t, err, queries.ErrQueryOrderIDIsInvalid)
}

func TestOrderStatusQuery_NotConstructed(t *testing.T) {
	var query queries.OrderStatusQuery
	require.ErrorIs(t, query.Validate(), queries.ErrOrderStatusQueryIsNotConstructed)
}

func TestNewOrderShipmentsQuery(t *testing.T) {
	query, err := queries.NewOrderShipmentsQuery(101)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, 101, query.OrderID())

	_, err = queries.NewOrderShipmentsQuery(-1)
	require.ErrorIs(t, err, queries.ErrQueryOrderIDIsInvalid)
}

func TestNewProductStockQuery(t *testing.T) {
	query, err := queries.NewProductStockQuery(7)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, 7, query.ProductID())

	zeroQuery, err := queries.NewProductStockQuery(0)
	require.NoError(t, err)
	assert.Equal(t, 0, zeroQuery.ProductID())

	_, err = queries.NewProductStockQuery(-1)
	require.ErrorIs(t, err, queries.ErrQueryProductIDIsInvalid)
}

func TestParameterlessQueries_Validate(t *testing.T) {
	require.NoError(t, queries.NewGetAllOrdersQuery().Validate())
	require.NoError(t, queries.NewPendingQueueQuery().Validate())
	require.NoError(t, queries.NewGetAllStockQuery().Validate())
	require.NoError(t, queries.NewSystemStatusQuery().Validate())

	var allOrders queries.GetAllOrdersQuery
	require.ErrorIs(t, allOrders.Validate(), queries.ErrGetAllOrdersQueryIsNotConstructed)
}
