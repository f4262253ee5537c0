package dto

import (
	"github.com/hapkiduki/sgp-engine/internal/domain/entity"
	"github.com/hapkiduki/sgp-engine/internal/domain/valueobject"
)

// AreaRequest carries the sides of one piece, in centimeters.
type AreaRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BatchAreaRequest carries several pieces for a single area calculation.
type BatchAreaRequest struct {
	Items []AreaRequest `json:"items"`
}

// Dimensions converts the request into domain dimensions, preserving order.
func (r BatchAreaRequest) Dimensions() []valueobject.Dimension {
	dims := make([]valueobject.Dimension, 0, len(r.Items))
	for _, item := range r.Items {
		dims = append(dims, valueobject.NewDimension(item.Width, item.Height))
	}
	return dims
}

// BatchAreaResponse is the result of a batch area calculation.
type BatchAreaResponse struct {
	Results           []valueobject.AreaResult `json:"results"`
	Count             int                      `json:"count"`
	CalculationTimeMs int64                    `json:"calculation_time_ms"`
}

// TextInputRequest carries free-form user text, such as "R$ 1.234,56".
type TextInputRequest struct {
	Input string `json:"input"`
}

// FormatMoneyResponse pairs a number with its Brazilian formatting.
type FormatMoneyResponse struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// TotalMoneyRequest carries the money strings to add up.
type TotalMoneyRequest struct {
	Values []string `json:"values"`
}

// NumberResponse carries a parsed number.
type NumberResponse struct {
	Value float64 `json:"value"`
}

// MoneyValidationRequest carries a value in reais to validate.
type MoneyValidationRequest struct {
	Value float64 `json:"value"`
}

// IlhosRequest carries an eyelet configuration to validate.
type IlhosRequest struct {
	Quantity  uint32  `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Spacing   float64 `json:"spacing"`
}

// CPFRequest carries a CPF, formatted or not.
type CPFRequest struct {
	CPF string `json:"cpf"`
}

// EmailRequest carries an e-mail address.
type EmailRequest struct {
	Email string `json:"email"`
}

// ValidityResponse reports whether an identifier is valid.
type ValidityResponse struct {
	Valid bool `json:"valid"`
}

// ProductionBatchRequest carries the items of a production batch.
type ProductionBatchRequest struct {
	Items []entity.ProductionItem `json:"items"`
}

// CacheValueRequest carries the value to store under a cache key.
type CacheValueRequest struct {
	Value string `json:"value"`
}

// CacheEntryResponse is a single cache entry.
type CacheEntryResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BenchmarkRequest asks for a calculation benchmark.
type BenchmarkRequest struct {
	Iterations int `json:"iterations"`
}

// BenchmarkResponse reports the wall time of each benchmarked calculation.
type BenchmarkResponse struct {
	Iterations int     `json:"iterations"`
	AreaMs     float64 `json:"area_ms"`
	MoneyMs    float64 `json:"money_ms"`
}
