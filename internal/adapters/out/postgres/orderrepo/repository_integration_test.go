package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/postgres/orderrepo"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence
// behavior, including the jsonb item columns.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) mustItem(productID, quantity int) order.Item {
	item, err := order.NewItem(productID, quantity)
	suite.Require().NoError(err)
	return item
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(id int, createdAt time.Time) *order.Order {
	o, err := order.NewOrder(id, []order.Item{suite.mustItem(1, 4), suite.mustItem(2, 1)}, createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	created := time.Now().UTC().Truncate(time.Millisecond)
	o := suite.newOrder(101, created)

	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, 101)
	suite.Require().NoError(err)
	suite.Equal(101, loaded.ID())
	suite.Equal(order.Pending, loaded.Status())
	suite.Len(loaded.RequestedItems(), 2)
	suite.Empty(loaded.ShippedItems())
	suite.True(loaded.CreatedAt().Equal(created))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), 999)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsShipmentProgress() {
	ctx := context.Background()
	o := suite.newOrder(101, time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.ApplyShipment([]order.Item{suite.mustItem(1, 4)}))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, 101)
	suite.Require().NoError(err)
	suite.Equal(order.PartiallyFulfilled, loaded.Status())
	suite.Equal(1, loaded.ShipmentCount())
	suite.Len(loaded.ShippedItems(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	o := suite.newOrder(101, time.Now().UTC())
	err := suite.repository.Update(context.Background(), o)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllUnfulfilled_QueueOrder() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	older := suite.newOrder(20, base)
	newer := suite.newOrder(10, base.Add(time.Minute))
	tied := suite.newOrder(30, base)
	suite.Require().NoError(suite.repository.Add(ctx, older))
	suite.Require().NoError(suite.repository.Add(ctx, newer))
	suite.Require().NoError(suite.repository.Add(ctx, tied))

	// A fulfilled order drops out of the queue.
	done, err := order.NewOrder(40, []order.Item{suite.mustItem(1, 1)}, base)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, done))
	suite.Require().NoError(done.ApplyShipment([]order.Item{suite.mustItem(1, 1)}))
	suite.Require().NoError(suite.repository.Update(ctx, done))

	unfulfilled, err := suite.repository.GetAllUnfulfilled(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(unfulfilled, 3)
	suite.Equal(20, unfulfilled[0].ID())
	suite.Equal(30, unfulfilled[1].ID())
	suite.Equal(10, unfulfilled[2].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCount() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(101, time.Now().UTC())))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(102, time.Now().UTC())))

	count, err := suite.repository.Count(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
