// Package repository contains the repository interfaces (ports) for data access.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hapkiduki/sgp-engine/internal/domain/entity"
)

// OrderFilter contains criteria for filtering orders.
type OrderFilter struct {
	// Status filters orders by status.
	Status *entity.OrderStatus

	// ClientName matches orders whose client name contains this text (case-insensitive).
	ClientName string

	// Limit specifies the maximum number of results (0 means no limit)
	Limit int

	// Offset specifies the starting position for pagination
	Offset int
}

// OrderRepository defines the interface for order persistence operations.
//
// Example usage:
//
//	repo := sqlite.NewOrderRepository(db)
//	order, err := repo.GetByID(ctx, orderID)
type OrderRepository interface {
	// Create persists a new order and assigns its sequential Number.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - order: The order to create
	//
	// Returns:
	//   - error: any error encountered during creation
	Create(ctx context.Context, order *entity.Order) error

	// GetByID retrieves an order by its unique identifier.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: The order's UUID
	//
	// Returns:
	//   - *entity.Order: The retrieved order
	//   - error: ErrOrderNotFound if the order doesn't exist
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// Update persists changes to an existing order and bumps its Version.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - order: The order to update
	//
	// Returns:
	//   - error: ErrOptimisticLock if version mismatch, ErrOrderNotFound if missing
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes an order from the data store.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: The order's UUID
	//
	// Returns:
	//   - error: ErrOrderNotFound if the order doesn't exist
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves orders matching the filter, newest number first.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)

	// Count returns the number of orders matching the filter, ignoring Limit and Offset.
	Count(ctx context.Context, filter OrderFilter) (int64, error)
}
