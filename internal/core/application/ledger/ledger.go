package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
	"github.com/jpirumvaa/fulfillment-system/internal/core/ports"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"
)

// OrderLedger is the in-memory record of every order the system has seen,
// mirrored to a durable store. It owns order admission and shipment
// recording; fulfillment status is always derived inside the aggregate,
// never set here.
//
// All operations serialize on an internal mutex.
type OrderLedger struct {
	mu     sync.Mutex
	orders map[int]*order.Order

	repo   ports.OrderRepository
	logger *slog.Logger
}

// NewOrderLedger creates an empty ledger writing through to the given
// repository.
func NewOrderLedger(repo ports.OrderRepository, logger *slog.Logger) *OrderLedger {
	return &OrderLedger{
		orders: make(map[int]*order.Order),
		repo:   repo,
		logger: logger.With("component", "ledger"),
	}
}

// Load restores the in-memory order map from the durable store. Meant to
// run once at startup, before the ledger starts serving operations.
func (l *OrderLedger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := l.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	l.orders = make(map[int]*order.Order, len(orders))
	for _, o := range orders {
		l.orders[o.ID()] = o
	}

	if len(orders) > 0 {
		l.logger.InfoContext(ctx, "Ledger recovered from store", "orders", len(orders))
	}
	return nil
}

// Enqueue admits an order into the ledger. A new order id creates a Pending
// order stamped with now. Resubmitting an id whose order has no shipments
// replaces its requested items in place, keeping the original creation time
// and queue position. Resubmitting an id that already has shipments fails
// with order.ErrOrderHasShipments: partially shipped inventory cannot be
// recalled, so the resubmission is ambiguous and refused.
func (l *OrderLedger) Enqueue(ctx context.Context, orderID int, items []order.Item, now time.Time) (*order.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.orders[orderID]; ok {
		if existing.ShipmentCount() > 0 {
			return nil, fmt.Errorf("%w: order %d", order.ErrOrderHasShipments, orderID)
		}

		if err := existing.ReplaceItems(items); err != nil {
			return nil, err
		}
		if err := l.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("persist order %d: %w", orderID, err)
		}

		l.logger.InfoContext(ctx, "Order resubmitted", "orderId", orderID)
		return existing, nil
	}

	o, err := order.NewOrder(orderID, items, now)
	if err != nil {
		return nil, err
	}
	if err := l.repo.Add(ctx, o); err != nil {
		return nil, fmt.Errorf("persist order %d: %w", orderID, err)
	}

	l.orders[orderID] = o
	l.logger.InfoContext(ctx, "Order enqueued", "orderId", orderID)
	return o, nil
}

// GetOrder returns the order with the given id, or an
// errs.ObjectNotFoundError when the ledger has never seen it.
func (l *OrderLedger) GetOrder(orderID int) (*order.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", orderID)
	}
	return o, nil
}

// PendingOrders returns every order still awaiting stock (Pending or
// PartiallyFulfilled), ordered by creation time ascending with order id as
// the tie break. This ordering is the fulfillment queue: restocks walk it
// front to back, so older orders always get first claim on new stock.
func (l *OrderLedger) PendingOrders() []*order.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending := make([]*order.Order, 0, len(l.orders))
	for _, o := range l.orders {
		if !o.Status().IsTerminal() {
			pending = append(pending, o)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].CreatedAt().Equal(pending[j].CreatedAt()) {
			return pending[i].ID() < pending[j].ID()
		}
		return pending[i].CreatedAt().Before(pending[j].CreatedAt())
	})
	return pending
}

// RecordShipment applies one committed package against a copy of the order
// and writes the copy through the given store, which is expected to be
// bound to the caller's transaction. The in-memory aggregate stays
// untouched until CompleteShipment installs the returned copy, so a caller
// whose transaction fails after this call simply drops the copy. The
// order's status is re-derived inside the aggregate, which is the only
// place fulfillment status ever changes.
func (l *OrderLedger) RecordShipment(ctx context.Context, store ports.OrderRepository, orderID int, lines []order.Item) (*order.Order, error) {
	return l.RecordShipments(ctx, store, orderID, [][]order.Item{lines})
}

// RecordShipments applies several packages against one copy of the order
// with a single write, incrementing the shipment count once per package.
// Used by chunked commits where many packages for the same order share a
// transaction.
func (l *OrderLedger) RecordShipments(ctx context.Context, store ports.OrderRepository, orderID int, lineSets [][]order.Item) (*order.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.orders[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", orderID)
	}

	updated, err := order.RestoreOrder(
		current.ID(),
		current.RequestedItems(),
		current.ShippedItems(),
		current.ShipmentCount(),
		current.CreatedAt(),
	)
	if err != nil {
		return nil, err
	}

	for _, lines := range lineSets {
		if err := updated.ApplyShipment(lines); err != nil {
			return nil, err
		}
	}

	if err := store.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("persist order %d: %w", orderID, err)
	}
	return updated, nil
}

// CompleteShipment installs the aggregate returned by RecordShipment once
// the surrounding transaction has committed.
func (l *OrderLedger) CompleteShipment(o *order.Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders[o.ID()] = o
}

// Orders returns every order in the ledger, ordered by id ascending.
func (l *OrderLedger) Orders() []*order.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	all := make([]*order.Order, 0, len(l.orders))
	for _, o := range l.orders {
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID() < all[j].ID() })
	return all
}

// Count returns the number of orders in the ledger.
func (l *OrderLedger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}
