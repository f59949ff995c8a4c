package queries

import (
	"errors"

	"github.com/jpirumvaa/fulfillment-system/internal/pkg/guard"
)

var (
	ErrPendingQueueQueryIsNotConstructed = errors.New(
		"PendingQueueQuery must be created via NewPendingQueueQuery constructor",
	)
)

// PendingQueueQuery retrieves the fulfillment queue: every order still
// awaiting stock, in the order restocks will serve them.
type PendingQueueQuery struct {
	guard guard.ConstructorGuard
}

// NewPendingQueueQuery creates a parameterless query for the fulfillment
// queue.
func NewPendingQueueQuery() PendingQueueQuery {
	return PendingQueueQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q PendingQueueQuery) Validate() error {
	return q.guard.Validate(ErrPendingQueueQueryIsNotConstructed)
}
