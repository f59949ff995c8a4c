package order

import (
	"fmt"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
//
// Unlike a transition-driven state machine, Status is always derived from the
// relationship between requested and shipped quantities and is never set
// directly:
//
//	Pending:            no package has shipped yet
//	PartiallyFulfilled: at least one package shipped, but some product is
//	                    still short of its requested quantity
//	Fulfilled:          shipped equals requested for every product; terminal
//
// Status provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the state of an order with no shipped packages.
	Pending

	// PartiallyFulfilled is the state of an order with at least one shipped
	// package that has not yet covered every requested quantity.
	PartiallyFulfilled

	// Fulfilled is the terminal state: every requested quantity has shipped.
	// No further shipments are attempted against a fulfilled order.
	Fulfilled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Pending:            "Pending",
		PartiallyFulfilled: "PartiallyFulfilled",
		Fulfilled:          "Fulfilled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:            "Pending",
		PartiallyFulfilled: "PartiallyFulfilled",
		Fulfilled:          "Fulfilled",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are Pending, PartiallyFulfilled and Fulfilled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further shipments.
func (s Status) IsTerminal() bool {
	return s == Fulfilled
}

// deriveStatus computes the status implied by the requested and shipped item
// sets. Fulfilled requires equality for every requested product; any shipped
// quantity short of that yields PartiallyFulfilled; no shipped quantity at
// all yields Pending.
func deriveStatus(requested, shipped []Item) Status {
	anyShipped := false
	allCovered := true

	for _, req := range requested {
		got := quantityFor(shipped, req.productID)
		if got > 0 {
			anyShipped = true
		}
		if got < req.quantity {
			allCovered = false
		}
	}

	switch {
	case allCovered && len(requested) > 0:
		return Fulfilled
	case anyShipped:
		return PartiallyFulfilled
	default:
		return Pending
	}
}
