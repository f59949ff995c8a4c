package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/product"
	"github.com/jpirumvaa/fulfillment-system/internal/core/ports"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"
)

var (
	// ErrAlreadyInitialized is returned when InitCatalog is called a second
	// time without an intervening Reset.
	ErrAlreadyInitialized = errors.New("catalog is already initialized")

	// ErrNotInitialized is returned when stock operations run before the
	// catalog has received its founding product list.
	ErrNotInitialized = errors.New("catalog is not initialized")

	// ErrProductNotFound indicates that an operation referenced a product id
	// the catalog does not know.
	ErrProductNotFound = errors.New("product not found")
)

// ProductDescriptor describes one product in the founding catalog list.
type ProductDescriptor struct {
	ID            int
	Name          string
	UnitMassGrams int
}

// StockDelta pairs a product id with a unit quantity. It is used both for
// restock increments and reservation decrements.
type StockDelta struct {
	ProductID int
	Quantity  int
}

// Catalog is the authoritative in-memory registry of products and their
// stock counts, mirrored to a durable store. All reads hit the in-memory
// map; every mutation is applied in memory and written through to the
// repository in one batched write.
//
// The catalog accepts its founding product list exactly once per process
// lifetime; only an explicit Reset clears the product map and the
// initialized flag. Recovery from the durable store is an explicit startup
// step (Load), not a constructor side effect.
//
// All operations serialize on an internal mutex, so two concurrent
// reservations against the same product can never both read a stale
// available count and jointly oversell it.
type Catalog struct {
	mu          sync.Mutex
	products    map[int]*product.Product
	initialized bool

	repo   ports.ProductRepository
	logger *slog.Logger
}

// NewCatalog creates an empty, uninitialized Catalog writing through to the
// given repository.
func NewCatalog(repo ports.ProductRepository, logger *slog.Logger) *Catalog {
	return &Catalog{
		products: make(map[int]*product.Product),
		repo:     repo,
		logger:   logger.With("component", "catalog"),
	}
}

// Load restores the in-memory product map from the durable store. A
// non-empty store marks the catalog initialized. Load is meant to run once
// at startup, before the catalog starts serving operations.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	c.products = make(map[int]*product.Product, len(products))
	for _, p := range products {
		c.products[p.ID()] = p
	}
	c.initialized = len(products) > 0

	if c.initialized {
		c.logger.InfoContext(ctx, "Catalog recovered from store", "products", len(products))
	}
	return nil
}

// IsInitialized reports whether the catalog has received its founding
// product list.
func (c *Catalog) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// InitCatalog accepts the founding product list. Every listed product is
// created with zero stock (initialization never seeds inventory) and the
// catalog is marked initialized. Fails with ErrAlreadyInitialized when
// called more than once without an intervening Reset, leaving the first
// call's state unchanged.
func (c *Catalog) InitCatalog(ctx context.Context, descriptors []ProductDescriptor) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return ErrAlreadyInitialized
	}
	if len(descriptors) == 0 {
		return errs.NewValueIsRequiredError("products are required")
	}

	incoming := make(map[int]*product.Product, len(descriptors))
	batch := make([]*product.Product, 0, len(descriptors))
	for _, d := range descriptors {
		if _, dup := incoming[d.ID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"products are invalid",
				fmt.Errorf("product %d listed twice", d.ID),
			)
		}

		p, err := product.NewProduct(d.ID, d.Name, d.UnitMassGrams)
		if err != nil {
			return err
		}
		incoming[d.ID] = p
		batch = append(batch, p)
	}

	if err := c.repo.SaveAll(ctx, batch); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}

	c.products = incoming
	c.initialized = true
	c.logger.InfoContext(ctx, "Catalog initialized", "products", len(batch))
	return nil
}

// Restock increments stock for each listed product and persists the touched
// products in one batched write. Restock is best-effort across the batch:
// unknown product ids and non-positive quantities are skipped with a warning
// so one bad entry never discards an otherwise-valid batch.
//
// Restock is not idempotent: replaying the same payload doubles stock.
// Callers needing exactly-once semantics must deduplicate by an external
// event id before reaching the catalog.
func (c *Catalog) Restock(ctx context.Context, deltas []StockDelta) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrNotInitialized
	}

	applied := make([]StockDelta, 0, len(deltas))
	touched := make([]*product.Product, 0, len(deltas))
	for _, delta := range deltas {
		p, ok := c.products[delta.ProductID]
		if !ok {
			c.logger.WarnContext(ctx, "Skipping restock for unknown product", "productId", delta.ProductID)
			continue
		}

		if err := p.Restock(delta.Quantity); err != nil {
			c.logger.WarnContext(ctx, "Skipping invalid restock entry",
				"productId", delta.ProductID, "quantity", delta.Quantity, "error", err)
			continue
		}

		applied = append(applied, delta)
		touched = append(touched, p)
	}

	if len(touched) == 0 {
		return nil
	}

	if err := c.repo.SaveAll(ctx, touched); err != nil {
		c.revert(applied)
		return fmt.Errorf("persist restock: %w", err)
	}

	c.logger.InfoContext(ctx, "Restock applied", "entries", len(applied), "skipped", len(deltas)-len(applied))
	return nil
}

// AvailableStock returns the current stock count for the product, or zero
// for unknown product ids. It never fails and never returns a negative
// count.
func (c *Catalog) AvailableStock(productID int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[productID]
	if !ok {
		return 0
	}
	return p.QuantityInStock()
}

// UnitMass returns the unit mass in grams for the product, and whether the
// product is known to the catalog.
func (c *Catalog) UnitMass(productID int) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[productID]
	if !ok {
		return 0, false
	}
	return p.UnitMassGrams(), true
}

// Reserve decrements stock for every listed item, all or nothing. Every
// item is validated before any mutation: an unknown product id fails with
// ErrProductNotFound and an oversized quantity with
// product.ErrInsufficientStock (naming the short product), leaving all
// stock untouched. Only on full validation are the decrements applied and
// persisted as one batch through the given store, which is expected to be
// bound to the caller's transaction. If that transaction later fails the
// caller must put the in-memory decrements back with Release.
func (c *Catalog) Reserve(ctx context.Context, store ports.ProductRepository, items []StockDelta) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrNotInitialized
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items are required")
	}

	for _, item := range items {
		p, ok := c.products[item.ProductID]
		if !ok {
			return fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid",
				fmt.Errorf("product %d has quantity %d", item.ProductID, item.Quantity),
			)
		}
		if !p.CanReserve(item.Quantity) {
			return fmt.Errorf("%w: product %d has %d units, %d requested",
				product.ErrInsufficientStock, item.ProductID, p.QuantityInStock(), item.Quantity)
		}
	}

	applied := make([]StockDelta, 0, len(items))
	touched := make([]*product.Product, 0, len(items))
	for _, item := range items {
		p := c.products[item.ProductID]
		if err := p.Reserve(item.Quantity); err != nil {
			// Unreachable after validation above; revert to be safe.
			c.revertReservations(applied)
			return err
		}
		applied = append(applied, item)
		touched = append(touched, p)
	}

	if err := store.SaveAll(ctx, touched); err != nil {
		c.revertReservations(applied)
		return fmt.Errorf("persist reservation: %w", err)
	}

	return nil
}

// Release puts reserved stock back after the surrounding transaction was
// rolled back. In-memory only: the durable decrements never committed, so
// no write happens here.
func (c *Catalog) Release(deltas []StockDelta) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revertReservations(deltas)
}

// TotalMass returns the summed unit mass times quantity over the known
// products in items. Unknown products contribute zero; callers are expected
// to have pre-filtered.
func (c *Catalog) TotalMass(items []StockDelta) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range items {
		if p, ok := c.products[item.ProductID]; ok && item.Quantity > 0 {
			total += p.UnitMassGrams() * item.Quantity
		}
	}
	return total
}

// Reset clears the product map and the initialized flag, and removes the
// persisted products. Used only for controlled re-initialization, never as
// part of normal order flow.
func (c *Catalog) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset catalog: %w", err)
	}

	c.products = make(map[int]*product.Product)
	c.initialized = false
	c.logger.InfoContext(ctx, "Catalog reset")
	return nil
}

// revert undoes applied restock increments after a failed persist.
func (c *Catalog) revert(applied []StockDelta) {
	for _, delta := range applied {
		if p, ok := c.products[delta.ProductID]; ok {
			_ = p.Reserve(delta.Quantity)
		}
	}
}

// revertReservations undoes applied reservation decrements after a failed persist.
func (c *Catalog) revertReservations(applied []StockDelta) {
	for _, delta := range applied {
		if p, ok := c.products[delta.ProductID]; ok {
			_ = p.Restock(delta.Quantity)
		}
	}
}
