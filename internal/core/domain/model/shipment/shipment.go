package shipment

import (
	"errors"
	"fmt"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/kernel"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was
	// not created through the NewShipment or RestoreShipment factory methods.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrDuplicateProduct indicates that a package lists the same product in
	// more than one line. Lines are merged per product before packaging.
	ErrDuplicateProduct = errors.New("duplicate product in shipment lines")
)

// Shipment is one physical package committed against an order. It records
// the generated identifier, the owning order, the packed product lines, the
// total mass in grams, and the time of shipping.
//
// A Shipment is immutable once created: the append-only shipment log per
// order is the audit trail of everything that physically left the warehouse.
type Shipment struct {
	// id is the generated shipment identifier
	id kernel.UUID

	// orderID is the externally assigned id of the owning order
	orderID int

	// lines holds one entry per product, quantity > 0
	lines []order.Item

	// totalMassGrams is the summed unit mass times quantity over all lines
	totalMassGrams int

	// shippedAt is the commit time of the package
	shippedAt time.Time

	guard guard.ConstructorGuard
}

// NewShipment creates an immutable Shipment. The line list must be non-empty
// with at most one line per product, and the total mass must be positive.
func NewShipment(
	id kernel.UUID,
	orderID int,
	lines []order.Item,
	totalMassGrams int,
	shippedAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setLines(lines),
		s.setTotalMassGrams(totalMassGrams),
		s.setShippedAt(shippedAt),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a Shipment from persistent storage.
func RestoreShipment(
	id kernel.UUID,
	orderID int,
	lines []order.Item,
	totalMassGrams int,
	shippedAt time.Time,
) (*Shipment, error) {
	return NewShipment(id, orderID, lines, totalMassGrams, shippedAt)
}

// Validate ensures the Shipment was created through a factory method.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// IsEqual compares two shipments by their generated identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the generated shipment identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the externally assigned id of the owning order.
func (s *Shipment) OrderID() int {
	return s.orderID
}

// Lines returns a copy of the packed product lines.
func (s *Shipment) Lines() []order.Item {
	lines := make([]order.Item, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// TotalMassGrams returns the package's total mass in grams.
func (s *Shipment) TotalMassGrams() int {
	return s.totalMassGrams
}

// ShippedAt returns the commit time of the package.
func (s *Shipment) ShippedAt() time.Time {
	return s.shippedAt
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID int) error {
	if orderID < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderID is invalid",
			fmt.Errorf("%d is negative", orderID),
		)
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setLines(lines []order.Item) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines are required")
	}

	seen := make(map[int]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity() <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"lines are invalid",
				fmt.Errorf("product %d has quantity %d", line.ProductID(), line.Quantity()),
			)
		}
		if _, dup := seen[line.ProductID()]; dup {
			return fmt.Errorf("%w: product %d", ErrDuplicateProduct, line.ProductID())
		}
		seen[line.ProductID()] = struct{}{}
	}

	s.lines = make([]order.Item, len(lines))
	copy(s.lines, lines)
	return nil
}

func (s *Shipment) setTotalMassGrams(totalMassGrams int) error {
	if totalMassGrams <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalMassGrams is invalid",
			fmt.Errorf("%d is not greater than 0", totalMassGrams),
		)
	}
	s.totalMassGrams = totalMassGrams
	return nil
}

func (s *Shipment) setShippedAt(shippedAt time.Time) error {
	if shippedAt.IsZero() {
		return errs.NewValueIsRequiredError("shippedAt is required")
	}
	s.shippedAt = shippedAt
	return nil
}
