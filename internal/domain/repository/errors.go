// Package repository contains the repository interfaces and related errors.
package repository

import "errors"

// Repository errors define common error conditions across all repositories.
// These errors are used to communicate specific failure conditions
// from the data access layer to the application layer.

var (
	// ErrOrderNotFound is returned when an order cannot be found by ID.
	ErrOrderNotFound = errors.New("order not found")

	// ErrDuplicateOrderNumber is returned when two orders end up with the
	// same sequential number.
	ErrDuplicateOrderNumber = errors.New("order number already exists")

	// ErrOptimisticLock is returned when an update fails due to
	// a version mismatch (concurrent modification).
	ErrOptimisticLock = errors.New("optimistic lock conflict: record was modified by another transaction")

	// ErrConnectionFailed is returned when the database connection fails.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrTransactionFailed is returned when a database transaction fails.
	ErrTransactionFailed = errors.New("database transaction failed")

	// ErrInvalidInput is returned when repository receives invalid input.
	ErrInvalidInput = errors.New("invalid input provided")
)

// IsNotFoundError checks if the error is a not found error.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a resource was not found
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

// IsConflictError checks if the error is caused by concurrent or duplicate writes.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error is a duplicate or optimistic-lock conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateOrderNumber) ||
		errors.Is(err, ErrOptimisticLock)
}
