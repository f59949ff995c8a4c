package cmd

import (
	"context"
	"log/slog"

	httpin "github.com/jpirumvaa/fulfillment-system/internal/adapters/in/http"
	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/postgres"
	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/postgres/orderrepo"
	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/postgres/productrepo"
	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/rabbitmq"
	"github.com/jpirumvaa/fulfillment-system/internal/core/application/allocator"
	"github.com/jpirumvaa/fulfillment-system/internal/core/application/catalog"
	"github.com/jpirumvaa/fulfillment-system/internal/core/application/ledger"
	"github.com/jpirumvaa/fulfillment-system/internal/core/application/usecases/commands"
	"github.com/jpirumvaa/fulfillment-system/internal/core/application/usecases/queries"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/shipment"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/services"
	"github.com/jpirumvaa/fulfillment-system/internal/core/ports"
	"github.com/jpirumvaa/fulfillment-system/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires every component of the fulfillment system: the
// in-memory catalog and ledger over their postgres mirrors, the allocator
// with its packing strategy and notifier, and the command and query
// handlers the HTTP layer consumes.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger *slog.Logger

	catalog   *catalog.Catalog
	ledger    *ledger.OrderLedger
	allocator *allocator.Allocator
	notifier  ports.ShipmentNotifier

	amqpNotifier *rabbitmq.ShipmentNotifier
}

// NewCompositionRoot builds the full dependency graph. The AMQP notifier is
// optional: with no broker URL configured, dispatch events only land in the
// log.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	productRepo := productrepo.NewGormProductRepository(gormDB)
	orderRepo := orderrepo.NewGormOrderRepository(gormDB)
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	cat := catalog.NewCatalog(productRepo, logger)
	led := ledger.NewOrderLedger(orderRepo, logger)

	strategy, err := services.StrategyByName(config.PackingStrategy)
	if err != nil {
		return nil, err
	}

	var notifier ports.ShipmentNotifier
	var amqpNotifier *rabbitmq.ShipmentNotifier
	if config.AmqpURL != "" {
		amqpNotifier, err = rabbitmq.NewShipmentNotifier(config.AmqpURL, logger)
		if err != nil {
			return nil, err
		}
		notifier = amqpNotifier
	} else {
		notifier = logNotifier{logger: logger}
	}

	alloc, err := allocator.NewAllocator(
		cat, led, strategy, uowFactory, notifier,
		config.PackageMassCeilingGrams, logger,
	)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:       config,
		gormDB:       gormDB,
		logger:       logger,
		catalog:      cat,
		ledger:       led,
		allocator:    alloc,
		notifier:     notifier,
		amqpNotifier: amqpNotifier,
	}, nil
}

// Load recovers the in-memory catalog and ledger from the durable store.
// Must run before the HTTP server starts serving.
func (c *CompositionRoot) Load(ctx context.Context) error {
	if err := c.catalog.Load(ctx); err != nil {
		return err
	}
	return c.ledger.Load(ctx)
}

// Close releases external connections held by the graph.
func (c *CompositionRoot) Close() error {
	if c.amqpNotifier != nil {
		return c.amqpNotifier.Close()
	}
	return nil
}

func (c *CompositionRoot) CreateInitCatalogCommandHandler() commands.InitCatalogCommandHandler {
	return commands.NewInitCatalogCommandHandler(c.catalog)
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() commands.ProcessOrderCommandHandler {
	return commands.NewProcessOrderCommandHandler(c.allocator)
}

func (c *CompositionRoot) CreateProcessRestockCommandHandler() commands.ProcessRestockCommandHandler {
	return commands.NewProcessRestockCommandHandler(c.allocator)
}

func (c *CompositionRoot) CreateResetCatalogCommandHandler() commands.ResetCatalogCommandHandler {
	return commands.NewResetCatalogCommandHandler(c.catalog)
}

func (c *CompositionRoot) CreateOrderStatusQueryHandler() queries.OrderStatusQueryHandler {
	return queries.NewOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderShipmentsQueryHandler() queries.OrderShipmentsQueryHandler {
	return queries.NewOrderShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePendingQueueQueryHandler() queries.PendingQueueQueryHandler {
	return queries.NewPendingQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllStockQueryHandler() queries.GetAllStockQueryHandler {
	return queries.NewGetAllStockQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateProductStockQueryHandler() queries.ProductStockQueryHandler {
	return queries.NewProductStockQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSystemStatusQueryHandler() queries.SystemStatusQueryHandler {
	return queries.NewSystemStatusQueryHandler(c.gormDB)
}

// CreateServer assembles the HTTP server over all handlers.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateInitCatalogCommandHandler(),
		c.CreateProcessOrderCommandHandler(),
		c.CreateProcessRestockCommandHandler(),
		c.CreateResetCatalogCommandHandler(),
		c.CreateOrderStatusQueryHandler(),
		c.CreateOrderShipmentsQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		c.CreatePendingQueueQueryHandler(),
		c.CreateGetAllStockQueryHandler(),
		c.CreateProductStockQueryHandler(),
		c.CreateSystemStatusQueryHandler(),
		c.allocator.StrategyName(),
		c.allocator.MassCeilingGrams(),
	)
}

// CreateFulfillmentSweepJob assembles the periodic pending-queue sweep.
func (c *CompositionRoot) CreateFulfillmentSweepJob() *jobs.FulfillmentSweepJob {
	return jobs.NewFulfillmentSweepJob(c.allocator, c.config.FulfillmentSweepCron, c.logger)
}

// logNotifier is the fallback ShipmentNotifier used when no broker is
// configured.
type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) ShipmentDispatched(ctx context.Context, s *shipment.Shipment) error {
	n.logger.InfoContext(ctx, "Shipment dispatched",
		"shipmentId", s.ID().String(), "orderId", s.OrderID(), "totalMassGrams", s.TotalMassGrams())
	return nil
}
