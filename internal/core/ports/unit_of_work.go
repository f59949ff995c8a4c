package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each package
// commit. This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary across the stores a
// package commit touches. Client code must explicitly manage transaction
// lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ProductRepository returns a ProductRepository instance bound to the
	// current transaction.
	ProductRepository() ProductRepository

	// OrderRepository returns an OrderRepository instance bound to the
	// current transaction.
	OrderRepository() OrderRepository

	// ShipmentRepository returns a ShipmentRepository instance bound to the
	// current transaction.
	ShipmentRepository() ShipmentRepository
}
