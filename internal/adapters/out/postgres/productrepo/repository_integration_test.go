package productrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/postgres/productrepo"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/product"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProductRepositoryIntegrationTestSuite provides integration tests for
// ProductRepository using PostgreSQL containers, covering the batched
// upsert used by restock and reservation commits.
type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *productrepo.GormProductRepository
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&productrepo.ProductDTO{}))
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products").Error)
	suite.repository = productrepo.NewGormProductRepository(suite.db)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductRepositoryIntegrationTestSuite) newProduct(id int, name string, unitMass, stock int) *product.Product {
	p, err := product.RestoreProduct(id, name, unitMass, stock)
	suite.Require().NoError(err)
	return p
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	p := suite.newProduct(1, "Bolt", 100, 12)

	suite.Require().NoError(suite.repository.Add(ctx, p))

	loaded, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal("Bolt", loaded.Name())
	suite.Equal(100, loaded.UnitMassGrams())
	suite.Equal(12, loaded.QuantityInStock())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), 999)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestSaveAll_InsertsAndOverwrites() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newProduct(1, "Bolt", 100, 5)))

	// One existing product with changed stock, one brand new.
	err := suite.repository.SaveAll(ctx, []*product.Product{
		suite.newProduct(1, "Bolt", 100, 9),
		suite.newProduct(2, "Bracket", 400, 3),
	})
	suite.Require().NoError(err)

	bolt, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(9, bolt.QuantityInStock())

	all, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestDeleteAll() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newProduct(1, "Bolt", 100, 5)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newProduct(2, "Bracket", 400, 3)))

	suite.Require().NoError(suite.repository.DeleteAll(ctx))

	count, err := suite.repository.Count(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(0), count)
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
