package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/postgres/orderrepo"
	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/postgres/productrepo"
	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/postgres/shipmentrepo"
	"github.com/jpirumvaa/fulfillment-system/internal/core/application/usecases/queries"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/kernel"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/product"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/shipment"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueryHandlersIntegrationTestSuite exercises every read-side handler
// against a PostgreSQL container seeded through the write-side
// repositories.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	products  *productrepo.GormProductRepository
	orders    *orderrepo.GormOrderRepository
	shipments *shipmentrepo.GormShipmentRepository
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&shipmentrepo.ShipmentDTO{},
	))
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products, orders, shipments").Error)
	suite.products = productrepo.NewGormProductRepository(suite.db)
	suite.orders = orderrepo.NewGormOrderRepository(suite.db)
	suite.shipments = shipmentrepo.NewGormShipmentRepository(suite.db)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) mustItem(productID, quantity int) order.Item {
	item, err := order.NewItem(productID, quantity)
	suite.Require().NoError(err)
	return item
}

// seedFixtures loads two products, a partially fulfilled order with one
// shipment, a pending order and a fulfilled order.
func (suite *QueryHandlersIntegrationTestSuite) seedFixtures() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	bolt, err := product.RestoreProduct(1, "Bolt", 100, 12)
	suite.Require().NoError(err)
	bracket, err := product.RestoreProduct(2, "Bracket", 400, 3)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.products.SaveAll(ctx, []*product.Product{bolt, bracket}))

	partial, err := order.RestoreOrder(101,
		[]order.Item{suite.mustItem(1, 4)},
		[]order.Item{suite.mustItem(1, 1)},
		1, base)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(ctx, partial))

	pending, err := order.NewOrder(102, []order.Item{suite.mustItem(2, 2)}, base.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(ctx, pending))

	fulfilled, err := order.RestoreOrder(103,
		[]order.Item{suite.mustItem(1, 1)},
		[]order.Item{suite.mustItem(1, 1)},
		1, base.Add(2*time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(ctx, fulfilled))

	s, err := shipment.NewShipment(kernel.NewUUID(), 101,
		[]order.Item{suite.mustItem(1, 1)}, 100, base.Add(time.Second))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.shipments.Add(ctx, s))
}

func (suite *QueryHandlersIntegrationTestSuite) TestOrderStatus() {
	suite.seedFixtures()
	handler := queries.NewOrderStatusQueryHandler(suite.db)

	query, err := queries.NewOrderStatusQuery(101)
	suite.Require().NoError(err)

	response, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal("PartiallyFulfilled", response.Status)
	suite.Equal(1, response.ShipmentCount)
	suite.Require().Len(response.RemainingItems, 1)
	suite.Equal(3, response.RemainingItems[0].Quantity)
}

func (suite *QueryHandlersIntegrationTestSuite) TestOrderStatus_NotFound() {
	handler := queries.NewOrderStatusQueryHandler(suite.db)

	query, err := queries.NewOrderStatusQuery(999)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestOrderShipments() {
	suite.seedFixtures()
	handler := queries.NewOrderShipmentsQueryHandler(suite.db)

	query, err := queries.NewOrderShipmentsQuery(101)
	suite.Require().NoError(err)

	shipments, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(shipments, 1)
	suite.Equal(101, shipments[0].OrderID)
	suite.Equal(100, shipments[0].TotalMassGrams)
	suite.Require().Len(shipments[0].Lines, 1)

	// An order with no shipments yields an empty list.
	empty, err := queries.NewOrderShipmentsQuery(102)
	suite.Require().NoError(err)
	none, err := handler.Handle(context.Background(), empty)
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllOrders() {
	suite.seedFixtures()
	handler := queries.NewGetAllOrdersQueryHandler(suite.db)

	orders, err := handler.Handle(context.Background(), queries.NewGetAllOrdersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(orders, 3)
	suite.Equal(101, orders[0].OrderID)
	suite.Equal(102, orders[1].OrderID)
	suite.Equal(103, orders[2].OrderID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestPendingQueue() {
	suite.seedFixtures()
	handler := queries.NewPendingQueueQueryHandler(suite.db)

	queue, err := handler.Handle(context.Background(), queries.NewPendingQueueQuery())
	suite.Require().NoError(err)
	suite.Require().Len(queue, 2)
	suite.Equal(101, queue[0].OrderID)
	suite.Equal(102, queue[1].OrderID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllStock() {
	suite.seedFixtures()
	handler := queries.NewGetAllStockQueryHandler(suite.db)

	stock, err := handler.Handle(context.Background(), queries.NewGetAllStockQuery())
	suite.Require().NoError(err)
	suite.Require().Len(stock, 2)
	suite.Equal("Bolt", stock[0].Name)
	suite.Equal(12, stock[0].QuantityInStock)
}

func (suite *QueryHandlersIntegrationTestSuite) TestProductStock() {
	suite.seedFixtures()
	handler := queries.NewProductStockQueryHandler(suite.db)

	query, err := queries.NewProductStockQuery(2)
	suite.Require().NoError(err)

	response, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal("Bracket", response.Name)
	suite.Equal(400, response.UnitMassGrams)
	suite.Equal(3, response.QuantityInStock)

	missing, err := queries.NewProductStockQuery(999)
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestSystemStatus() {
	suite.seedFixtures()
	handler := queries.NewSystemStatusQueryHandler(suite.db)

	response, err := handler.Handle(context.Background(), queries.NewSystemStatusQuery())
	suite.Require().NoError(err)
	suite.True(response.Initialized)
	suite.Equal(int64(2), response.ProductCount)
	suite.Equal(int64(15), response.TotalUnitsInStock)
	suite.Equal(int64(3), response.OrderCount)
	suite.Equal(int64(1), response.PendingOrders)
	suite.Equal(int64(1), response.PartiallyFulfilled)
	suite.Equal(int64(1), response.FulfilledOrders)
	suite.Equal(int64(1), response.ShipmentCount)
	suite.Equal(int64(100), response.TotalShippedMassGrams)
}

func (suite *QueryHandlersIntegrationTestSuite) TestSystemStatus_EmptySystem() {
	handler := queries.NewSystemStatusQueryHandler(suite.db)

	response, err := handler.Handle(context.Background(), queries.NewSystemStatusQuery())
	suite.Require().NoError(err)
	suite.False(response.Initialized)
	suite.Equal(int64(0), response.OrderCount)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
