// Package usecase contains the application services that drive the domain:
// calculator operations exposed to clients and order management.
package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hapkiduki/sgp-engine/internal/application/port"
	"github.com/hapkiduki/sgp-engine/internal/domain/entity"
	"github.com/hapkiduki/sgp-engine/internal/domain/service"
	"github.com/hapkiduki/sgp-engine/internal/domain/validation"
	"github.com/hapkiduki/sgp-engine/internal/domain/valueobject"
)

const (
	// DefaultMaxBenchmarkIterations bounds RunBenchmark when no limit is configured.
	DefaultMaxBenchmarkIterations = 1_000_000

	benchmarkWidth  = 150.5
	benchmarkHeight = 200.75
	benchmarkMoney  = 1234.56

	areaKeyPrefix = "area:"

	msgTotalsOutOfRange = "batch totals exceed the representable range"
)

// BenchmarkResult is the wall time spent on each benchmarked calculation.
type BenchmarkResult struct {
	Iterations    int
	AreaDuration  time.Duration
	MoneyDuration time.Duration
}

// CalculatorService exposes the calculation core to the transport layer.
// It memoizes formatted areas in the calculation cache.
type CalculatorService struct {
	cache         port.CalculationCache
	log           port.Logger
	maxIterations int
}

// NewCalculatorService creates a CalculatorService.
//
// Parameters:
//   - cache: calculation cache shared with the cache endpoints
//   - log: logger for batch and benchmark diagnostics
//   - maxIterations: upper bound for RunBenchmark (non-positive uses the default)
//
// Returns:
//   - *CalculatorService: ready to use service
func NewCalculatorService(cache port.CalculationCache, log port.Logger, maxIterations int) *CalculatorService {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxBenchmarkIterations
	}
	return &CalculatorService{
		cache:         cache,
		log:           log,
		maxIterations: maxIterations,
	}
}

// CalculateArea computes the area of a piece. Valid results have their
// formatted area cached under "area:<width>x<height>"; invalid sides never
// reach the cache.
func (s *CalculatorService) CalculateArea(width, height float64) valueobject.AreaResult {
	if !(width > 0 && height > 0) {
		return valueobject.CalculateArea(width, height)
	}

	key := areaKey(width, height)
	if formatted, ok := s.cache.Get(key); ok {
		return valueobject.AreaResult{
			Area:          width * height,
			FormattedArea: formatted,
			Width:         width,
			Height:        height,
			Valid:         true,
		}
	}

	result := valueobject.CalculateArea(width, height)
	if result.Valid && !math.IsInf(result.Area, 0) {
		s.cache.Set(key, result.FormattedArea)
	}
	return result
}

// CalculateBatchAreas computes the area of every dimension, in input order.
func (s *CalculatorService) CalculateBatchAreas(ctx context.Context, dims []valueobject.Dimension) ([]valueobject.AreaResult, time.Duration) {
	results, elapsed := valueobject.CalculateBatchAreas(dims)

	s.log.WithContext(ctx).Debug("batch areas calculated",
		"count", len(results),
		"elapsed", elapsed.String(),
	)
	return results, elapsed
}

// ParseMoney parses a Brazilian money string such as "R$ 1.234,56".
func (s *CalculatorService) ParseMoney(input string) valueobject.MoneyValue {
	return valueobject.ParseBrazilianMoney(input)
}

// FormatMoney formats a value in reais as "1.234,56".
func (s *CalculatorService) FormatMoney(value float64) string {
	return valueobject.FormatBrazilianMoney(value)
}

// TotalMoney parses and adds up the given money strings.
func (s *CalculatorService) TotalMoney(values []string) valueobject.MoneyValue {
	return valueobject.CalculateTotalMoney(values)
}

// ParseNumber parses a Brazilian-formatted number, returning 0 on failure.
func (s *CalculatorService) ParseNumber(input string) float64 {
	return valueobject.ParseNumberSafe(input)
}

// ValidateDimensions checks the sides of a piece.
func (s *CalculatorService) ValidateDimensions(width, height float64) validation.Result {
	return validation.ValidateDimensions(width, height)
}

// ValidateMoney checks a value in reais.
func (s *CalculatorService) ValidateMoney(value float64) validation.Result {
	return validation.ValidateMoneyValue(value)
}

// ValidateIlhos checks an eyelet configuration.
func (s *CalculatorService) ValidateIlhos(quantity uint32, unitPrice, spacing float64) validation.Result {
	return validation.ValidateIlhosConfig(quantity, unitPrice, spacing)
}

// IsValidCPF reports whether cpf has valid check digits.
func (s *CalculatorService) IsValidCPF(cpf string) bool {
	return validation.IsValidCPF(cpf)
}

// IsValidEmail reports whether email looks like an address.
func (s *CalculatorService) IsValidEmail(email string) bool {
	return validation.IsValidEmail(email)
}

// ProcessBatch validates the items and folds them into totals.
//
// Parameters:
//   - ctx: request context, used for log correlation
//   - items: production items to aggregate
//
// Returns:
//   - service.BatchCalculationResult: totals and the unchanged items
//   - error: *ValidationError if any item has a negative or non-finite
//     numeric field, or if the totals overflow a float64
func (s *CalculatorService) ProcessBatch(ctx context.Context, items []entity.ProductionItem) (service.BatchCalculationResult, error) {
	if err := validateItems(items); err != nil {
		return service.BatchCalculationResult{}, err
	}

	result := service.ProcessProductionBatch(items)
	if math.IsInf(result.TotalArea, 0) || math.IsInf(result.TotalValue, 0) {
		return service.BatchCalculationResult{}, NewValidationError("items", msgTotalsOutOfRange)
	}

	s.log.WithContext(ctx).Debug("production batch processed",
		"items", result.ItemCount,
		"total_area", result.TotalArea,
		"total_value", result.TotalValue,
		"elapsed_ms", result.CalculationTimeMs,
	)
	return result, nil
}

// CacheGet returns a cached value.
func (s *CalculatorService) CacheGet(key string) (string, bool) {
	return s.cache.Get(key)
}

// CacheSet stores a value in the calculation cache. Keys under the area
// prefix belong to CalculateArea and are rejected.
func (s *CalculatorService) CacheSet(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return NewValidationError("key", "cache key cannot be empty")
	}
	if strings.HasPrefix(key, areaKeyPrefix) {
		return NewValidationError("key", fmt.Sprintf("keys starting with %q are reserved", areaKeyPrefix))
	}
	s.cache.Set(key, value)
	return nil
}

// CacheDelete removes a cached value and reports whether it existed.
func (s *CalculatorService) CacheDelete(key string) bool {
	return s.cache.Delete(key)
}

// CacheStats reports the calculation cache counters.
func (s *CalculatorService) CacheStats() port.CacheStats {
	return s.cache.Stats()
}

// CacheClear empties the calculation cache.
func (s *CalculatorService) CacheClear(ctx context.Context) {
	n := s.cache.Len()
	s.cache.Clear()
	s.log.WithContext(ctx).Info("calculation cache cleared", "entries", n)
}

// RunBenchmark times iterations of an area calculation and of a money
// formatting call. The cache is bypassed so only the calculation is measured.
func (s *CalculatorService) RunBenchmark(ctx context.Context, iterations int) (BenchmarkResult, error) {
	if iterations < 1 || iterations > s.maxIterations {
		return BenchmarkResult{}, NewValidationError("iterations",
			fmt.Sprintf("must be between 1 and %d", s.maxIterations))
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if i&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return BenchmarkResult{}, err
			}
		}
		_ = valueobject.CalculateArea(benchmarkWidth, benchmarkHeight)
	}
	areaTime := time.Since(start)

	start = time.Now()
	for i := 0; i < iterations; i++ {
		if i&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return BenchmarkResult{}, err
			}
		}
		_ = valueobject.FormatBrazilianMoney(benchmarkMoney)
	}
	moneyTime := time.Since(start)

	s.log.WithContext(ctx).Info("benchmark finished",
		"iterations", iterations,
		"area", areaTime.String(),
		"money", moneyTime.String(),
	)

	return BenchmarkResult{
		Iterations:    iterations,
		AreaDuration:  areaTime,
		MoneyDuration: moneyTime,
	}, nil
}

func areaKey(width, height float64) string {
	return areaKeyPrefix +
		strconv.FormatFloat(width, 'g', -1, 64) + "x" +
		strconv.FormatFloat(height, 'g', -1, 64)
}

func validateItems(items []entity.ProductionItem) error {
	verr := &ValidationError{}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			verr.Add(fmt.Sprintf("items[%d]", i), err.Error())
		}
	}
	return verr.errOrNil()
}
