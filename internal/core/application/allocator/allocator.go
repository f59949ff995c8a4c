package allocator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/core/application/catalog"
	"github.com/jpirumvaa/fulfillment-system/internal/core/application/ledger"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/kernel"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/shipment"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/services"
	"github.com/jpirumvaa/fulfillment-system/internal/core/ports"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"
)

// chunking thresholds for fulfillment passes that produce many packages:
// above chunkThreshold packages, stock is reserved per chunk of chunkSize
// instead of per package, cutting write round trips.
const (
	chunkThreshold = 100
	chunkSize      = 50
)

// Allocator matches pending orders against available stock. It coordinates
// the catalog, the order ledger and the packing strategy: whenever stock or
// orders change it computes the shippable subset of an order, splits it into
// packages under the mass ceiling and commits each package as stock
// reservation + shipment record + order update inside one unit of work, so
// the three writes land atomically or not at all.
//
// A single mutex serializes every allocation pass, so concurrent order
// submissions and restocks never interleave their reserve-and-commit
// sequences.
type Allocator struct {
	mu sync.Mutex

	catalog  *catalog.Catalog
	ledger   *ledger.OrderLedger
	strategy services.PackingStrategy

	uowFactory ports.UnitOfWorkFactory
	notifier   ports.ShipmentNotifier

	massCeilingGrams int
	logger           *slog.Logger
}

// NewAllocator creates an Allocator. The mass ceiling must be positive; it
// bounds the total mass of every package the allocator will ever commit.
func NewAllocator(
	cat *catalog.Catalog,
	led *ledger.OrderLedger,
	strategy services.PackingStrategy,
	uowFactory ports.UnitOfWorkFactory,
	notifier ports.ShipmentNotifier,
	massCeilingGrams int,
	logger *slog.Logger,
) (*Allocator, error) {
	if cat == nil {
		return nil, errs.NewValueIsRequiredError("catalog")
	}
	if led == nil {
		return nil, errs.NewValueIsRequiredError("ledger")
	}
	if strategy == nil {
		return nil, errs.NewValueIsRequiredError("strategy")
	}
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("unit of work factory")
	}
	if massCeilingGrams <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"mass ceiling is invalid",
			fmt.Errorf("mass ceiling must be positive, got %d", massCeilingGrams),
		)
	}

	return &Allocator{
		catalog:          cat,
		ledger:           led,
		strategy:         strategy,
		uowFactory:       uowFactory,
		notifier:         notifier,
		massCeilingGrams: massCeilingGrams,
		logger:           logger.With("component", "allocator"),
	}, nil
}

// MassCeilingGrams returns the configured per-package mass ceiling.
func (a *Allocator) MassCeilingGrams() int {
	return a.massCeilingGrams
}

// StrategyName returns the name of the active packing strategy.
func (a *Allocator) StrategyName() string {
	return a.strategy.Name()
}

// SubmitOrder admits the order into the ledger and immediately attempts to
// fulfill it from current stock. Partial availability is not an error: the
// order ships what it can and keeps the rest queued. The returned order
// reflects any shipments committed during the attempt.
func (a *Allocator) SubmitOrder(ctx context.Context, orderID int, items []order.Item) (*order.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.catalog.IsInitialized() {
		return nil, catalog.ErrNotInitialized
	}

	o, err := a.ledger.Enqueue(ctx, orderID, items, time.Now())
	if err != nil {
		return nil, err
	}

	a.fulfill(ctx, o)
	return a.ledger.GetOrder(orderID)
}

// ApplyRestock adds the delivered stock to the catalog and then walks the
// pending queue front to back, re-attempting fulfillment for each order.
// Older orders get first claim on the new stock; an order that cannot ship
// anything is skipped, not blocking the ones behind it.
func (a *Allocator) ApplyRestock(ctx context.Context, deltas []catalog.StockDelta) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.catalog.Restock(ctx, deltas); err != nil {
		return err
	}

	a.retryPendingLocked(ctx)
	return nil
}

// RetryPending re-attempts fulfillment for every queued order against
// current stock, in queue order. Used by the periodic sweep job to pick up
// stock freed by out-of-band corrections.
func (a *Allocator) RetryPending(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.retryPendingLocked(ctx)
}

func (a *Allocator) retryPendingLocked(ctx context.Context) {
	for _, o := range a.ledger.PendingOrders() {
		a.fulfill(ctx, o)
	}
}

// fulfill runs one allocation pass for the order: compute the shippable
// subset, pack it, commit each package. Must be called with a.mu held.
func (a *Allocator) fulfill(ctx context.Context, o *order.Order) {
	if o.Status().IsTerminal() {
		return
	}

	packItems := a.shippableItems(o)
	if len(packItems) == 0 {
		return
	}

	packages, unshippable := a.strategy.Pack(packItems, a.massCeilingGrams)
	for _, item := range unshippable {
		a.logger.WarnContext(ctx, "Product can never fit in a package",
			"orderId", o.ID(), "productId", item.ProductID, "unitMassGrams", item.UnitMassGrams,
			"massCeilingGrams", a.massCeilingGrams)
	}
	if len(packages) == 0 {
		return
	}

	if len(packages) > chunkThreshold {
		a.commitChunked(ctx, o, packages)
		return
	}
	for _, pkg := range packages {
		a.commitPackage(ctx, o, pkg)
	}
}

// shippableItems computes min(remaining, available) per product on the
// order, annotated with unit mass from the catalog. Products with no
// available stock contribute nothing and stay queued.
func (a *Allocator) shippableItems(o *order.Order) []services.PackItem {
	remaining := o.RemainingItems()
	packItems := make([]services.PackItem, 0, len(remaining))
	for _, item := range remaining {
		available := a.catalog.AvailableStock(item.ProductID())
		if available <= 0 {
			continue
		}
		unitMass, known := a.catalog.UnitMass(item.ProductID())
		if !known {
			continue
		}

		packItems = append(packItems, services.PackItem{
			ProductID:     item.ProductID(),
			Quantity:      min(item.Quantity(), available),
			UnitMassGrams: unitMass,
		})
	}
	return packItems
}

// commitPackage commits one package as a single transaction: reserve the
// package's stock, persist the shipment and write the updated order row,
// then commit. A failure at any step rolls the transaction back, puts the
// in-memory reservation back and skips the package, leaving its lines
// queued for a later pass.
func (a *Allocator) commitPackage(ctx context.Context, o *order.Order, pkg services.Package) {
	if !a.fitsCeiling(ctx, o.ID(), pkg) {
		return
	}

	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		a.logger.ErrorContext(ctx, "Starting package transaction failed",
			"orderId", o.ID(), "error", err)
		return
	}

	deltas := packageDeltas(pkg)
	if err := a.catalog.Reserve(ctx, uow.ProductRepository(), deltas); err != nil {
		a.rollback(ctx, uow)
		a.logger.WarnContext(ctx, "Package reservation failed, skipping",
			"orderId", o.ID(), "error", err)
		return
	}

	s, err := a.buildShipment(o.ID(), pkg)
	if err != nil {
		a.abort(ctx, uow, deltas)
		a.logger.ErrorContext(ctx, "Building shipment failed", "orderId", o.ID(), "error", err)
		return
	}

	if err := uow.ShipmentRepository().Add(ctx, s); err != nil {
		a.abort(ctx, uow, deltas)
		a.logger.ErrorContext(ctx, "Persisting shipment failed, package rolled back",
			"orderId", o.ID(), "shipmentId", s.ID(), "error", err)
		return
	}

	updated, err := a.ledger.RecordShipment(ctx, uow.OrderRepository(), o.ID(), s.Lines())
	if err != nil {
		a.abort(ctx, uow, deltas)
		a.logger.ErrorContext(ctx, "Recording shipment against order failed, package rolled back",
			"orderId", o.ID(), "shipmentId", s.ID(), "error", err)
		return
	}

	if err := uow.Commit(ctx); err != nil {
		a.catalog.Release(deltas)
		a.logger.ErrorContext(ctx, "Committing package transaction failed",
			"orderId", o.ID(), "shipmentId", s.ID(), "error", err)
		return
	}

	a.ledger.CompleteShipment(updated)
	a.logger.InfoContext(ctx, "Package shipped",
		"orderId", o.ID(), "shipmentId", s.ID(), "totalMassGrams", s.TotalMassGrams())
	a.notify(ctx, s)
}

// commitChunked handles a fulfillment pass that produced an unusually large
// number of packages: stock is reserved once per chunk instead of once per
// package, shipments are persisted per chunk in one batched write, and the
// order row is written once per chunk, all inside one transaction per
// chunk. A chunk whose aggregate reservation fails falls back to
// per-package commits, so a single short product cannot discard a whole
// chunk.
func (a *Allocator) commitChunked(ctx context.Context, o *order.Order, packages []services.Package) {
	a.logger.InfoContext(ctx, "Committing packages in chunks",
		"orderId", o.ID(), "packages", len(packages), "chunkSize", chunkSize)

	for start := 0; start < len(packages); start += chunkSize {
		end := min(start+chunkSize, len(packages))

		chunk := make([]services.Package, 0, end-start)
		for _, pkg := range packages[start:end] {
			if a.fitsCeiling(ctx, o.ID(), pkg) {
				chunk = append(chunk, pkg)
			}
		}
		if len(chunk) == 0 {
			continue
		}

		uow := a.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			a.logger.ErrorContext(ctx, "Starting chunk transaction failed",
				"orderId", o.ID(), "chunkStart", start, "error", err)
			continue
		}

		deltas := aggregateDeltas(chunk)
		if err := a.catalog.Reserve(ctx, uow.ProductRepository(), deltas); err != nil {
			a.rollback(ctx, uow)
			a.logger.WarnContext(ctx, "Chunk reservation failed, falling back to per-package commits",
				"orderId", o.ID(), "chunkStart", start, "error", err)
			for _, pkg := range chunk {
				a.commitPackage(ctx, o, pkg)
			}
			continue
		}

		shipments := make([]*shipment.Shipment, 0, len(chunk))
		lineSets := make([][]order.Item, 0, len(chunk))
		buildErr := error(nil)
		for _, pkg := range chunk {
			s, err := a.buildShipment(o.ID(), pkg)
			if err != nil {
				buildErr = err
				break
			}
			shipments = append(shipments, s)
			lineSets = append(lineSets, s.Lines())
		}
		if buildErr != nil {
			a.abort(ctx, uow, deltas)
			a.logger.ErrorContext(ctx, "Building shipment failed, chunk rolled back",
				"orderId", o.ID(), "chunkStart", start, "error", buildErr)
			continue
		}

		if err := uow.ShipmentRepository().AddAll(ctx, shipments); err != nil {
			a.abort(ctx, uow, deltas)
			a.logger.ErrorContext(ctx, "Persisting shipment chunk failed, chunk rolled back",
				"orderId", o.ID(), "chunkStart", start, "error", err)
			continue
		}

		updated, err := a.ledger.RecordShipments(ctx, uow.OrderRepository(), o.ID(), lineSets)
		if err != nil {
			a.abort(ctx, uow, deltas)
			a.logger.ErrorContext(ctx, "Recording shipment chunk against order failed, chunk rolled back",
				"orderId", o.ID(), "chunkStart", start, "error", err)
			continue
		}

		if err := uow.Commit(ctx); err != nil {
			a.catalog.Release(deltas)
			a.logger.ErrorContext(ctx, "Committing chunk transaction failed",
				"orderId", o.ID(), "chunkStart", start, "error", err)
			continue
		}

		a.ledger.CompleteShipment(updated)
		for _, s := range shipments {
			a.notify(ctx, s)
		}
	}
}

// fitsCeiling rejects packages the strategy should never have produced.
func (a *Allocator) fitsCeiling(ctx context.Context, orderID int, pkg services.Package) bool {
	if pkg.TotalMassGrams > a.massCeilingGrams {
		a.logger.ErrorContext(ctx, "Packing produced a package over the mass ceiling, skipping",
			"orderId", orderID, "totalMassGrams", pkg.TotalMassGrams,
			"massCeilingGrams", a.massCeilingGrams, "strategy", a.strategy.Name())
		return false
	}
	return true
}

func (a *Allocator) buildShipment(orderID int, pkg services.Package) (*shipment.Shipment, error) {
	lines := make([]order.Item, 0, len(pkg.Lines))
	for _, l := range pkg.Lines {
		item, err := order.NewItem(l.ProductID, l.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, item)
	}
	return shipment.NewShipment(kernel.NewUUID(), orderID, lines, pkg.TotalMassGrams, time.Now())
}

// notify publishes the dispatched shipment. Notification is outside the
// consistency boundary: a failed publish is logged, never unwound.
func (a *Allocator) notify(ctx context.Context, s *shipment.Shipment) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.ShipmentDispatched(ctx, s); err != nil {
		a.logger.WarnContext(ctx, "Shipment notification failed",
			"shipmentId", s.ID(), "error", err)
	}
}

// abort rolls the transaction back and puts the in-memory reservation back.
func (a *Allocator) abort(ctx context.Context, uow ports.UnitOfWork, deltas []catalog.StockDelta) {
	a.rollback(ctx, uow)
	a.catalog.Release(deltas)
}

func (a *Allocator) rollback(ctx context.Context, uow ports.UnitOfWork) {
	if err := uow.Rollback(ctx); err != nil {
		a.logger.ErrorContext(ctx, "Rolling back package transaction failed", "error", err)
	}
}

func packageDeltas(pkg services.Package) []catalog.StockDelta {
	deltas := make([]catalog.StockDelta, 0, len(pkg.Lines))
	for _, l := range pkg.Lines {
		deltas = append(deltas, catalog.StockDelta{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return deltas
}

// aggregateDeltas sums per-product quantities across all packages in a chunk.
func aggregateDeltas(packages []services.Package) []catalog.StockDelta {
	index := make(map[int]int)
	deltas := make([]catalog.StockDelta, 0)
	for _, pkg := range packages {
		for _, l := range pkg.Lines {
			if pos, ok := index[l.ProductID]; ok {
				deltas[pos].Quantity += l.Quantity
				continue
			}
			index[l.ProductID] = len(deltas)
			deltas = append(deltas, catalog.StockDelta{ProductID: l.ProductID, Quantity: l.Quantity})
		}
	}
	return deltas
}
