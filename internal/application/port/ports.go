// Package port contains the driven ports of the application layer: the
// interfaces the use cases need from logging, the calculation cache and
// dependency health checks.
//
// Adapters live outside the application layer (pkg/logger, the in-memory
// cache, the SQLite store) and are wired together in cmd/sgp-api, so use
// cases can be tested with no-op or in-memory implementations.
package port

import "context"

// Logger defines the interface for structured logging.
// The production implementation wraps pkg/logger (zap).
//
// Example usage:
//
//	log.Info("order created", "order_id", order.ID, "number", order.Number)
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})

	// With returns a logger with additional context fields.
	With(keysAndValues ...interface{}) Logger

	// WithContext returns a logger with context information (e.g., request ID).
	WithContext(ctx context.Context) Logger
}

// CalculationCache defines the interface for the bounded calculation cache.
// Implementations must be safe for concurrent use.
//
// Example usage:
//
//	cache := cache.NewMemory(1024)
//	cache.Set("area:100x50", "5.000,00")
type CalculationCache interface {
	// Get returns the value stored under key and whether it was found.
	Get(key string) (string, bool)

	// Set stores value under key, evicting the least recently used entry when full.
	Set(key, value string)

	// Delete removes key and reports whether it was present.
	Delete(key string) bool

	// Clear removes every entry.
	Clear()

	// Len returns the number of stored entries.
	Len() int

	// Stats returns a snapshot of the cache counters.
	Stats() CacheStats
}

// CacheStats is a point-in-time snapshot of calculation cache usage.
type CacheStats struct {
	Entries   int    `json:"entries"`
	Capacity  int    `json:"capacity"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	// Ping returns an error when the dependency cannot serve requests.
	Ping(ctx context.Context) error
}
