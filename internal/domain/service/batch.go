// Package service contains domain services: stateless operations that work
// across several entities and do not belong to any single one of them.
package service

import (
	"math"
	"time"

	"github.com/hapkiduki/sgp-engine/internal/domain/entity"
	"github.com/hapkiduki/sgp-engine/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

// BatchCalculationResult aggregates a collection of production items.
type BatchCalculationResult struct {
	// TotalArea is the summed area (cm²) of every item with both dimensions.
	TotalArea float64 `json:"total_area"`

	// TotalValue is the summed value + additional value of every item, in reais.
	TotalValue float64 `json:"total_value"`

	// ItemCount is the number of input items, including those without dimensions.
	ItemCount int `json:"item_count"`

	// Items are the input items, unchanged.
	Items []entity.ProductionItem `json:"items"`

	// CalculationTimeMs is the time spent aggregating, for observability only.
	CalculationTimeMs int64 `json:"calculation_time_ms"`
}

// TotalMoney returns TotalValue as a MoneyValue rounded to the cent.
func (r BatchCalculationResult) TotalMoney() valueobject.MoneyValue {
	return valueobject.NewMoneyFromFloat(r.TotalValue)
}

// ProcessProductionBatch folds the items into totals in a single pass.
//
// An item contributes to the area only when both width and height are
// present. Value and additional value always contribute, each defaulting to
// zero. Money is summed in decimal so the float total is the exact sum of
// the inputs.
func ProcessProductionBatch(items []entity.ProductionItem) BatchCalculationResult {
	start := time.Now()

	var totalArea float64
	totalValue := decimal.Zero
	processed := make([]entity.ProductionItem, 0, len(items))

	for _, item := range items {
		if dim, ok := item.Dimension(); ok {
			totalArea += dim.Area().Area
		}

		totalValue = addAmount(totalValue, item.Value)
		totalValue = addAmount(totalValue, item.AdditionalValue)

		processed = append(processed, item)
	}

	return BatchCalculationResult{
		TotalArea:         totalArea,
		TotalValue:        totalValue.InexactFloat64(),
		ItemCount:         len(processed),
		Items:             processed,
		CalculationTimeMs: time.Since(start).Milliseconds(),
	}
}

// addAmount adds v to total when v is present and finite. Non-finite amounts
// cannot be represented as decimals; ProductionItem.Validate rejects them.
func addAmount(total decimal.Decimal, v *float64) decimal.Decimal {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return total
	}
	return total.Add(decimal.NewFromFloat(*v))
}
