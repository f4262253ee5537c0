// Package entity contains the core business entities of the domain layer.
package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/hapkiduki/sgp-engine/internal/domain/validation"
	"github.com/hapkiduki/sgp-engine/internal/domain/valueobject"
)

var (
	// ErrNegativeItemField is returned when an optional numeric field of a
	// production item is present but negative.
	ErrNegativeItemField = errors.New("production item field cannot be negative")

	// ErrNonFiniteItemField is returned when a numeric field is NaN or infinite.
	ErrNonFiniteItemField = errors.New("production item field must be a finite number")
)

// IlhosConfig describes the grommets (ilhós) placed along a fabric panel.
type IlhosConfig struct {
	// Quantity is the number of ilhós.
	Quantity uint32 `json:"quantity"`

	// UnitPrice is the price of a single ilhó in reais.
	UnitPrice float64 `json:"unit_price"`

	// Spacing is the distance between ilhós in centimeters.
	Spacing float64 `json:"spacing"`
}

// Validate runs the ilhós business rules.
//
// Returns:
//   - validation.Result: errors and warnings for this configuration
func (c IlhosConfig) Validate() validation.Result {
	return validation.ValidateIlhosConfig(c.Quantity, c.UnitPrice, c.Spacing)
}

// ProductionItem is a single piece to be produced for an order (a panel, a
// banner, a totem...). Most fields are optional because the shop floor
// records them as they become known.
type ProductionItem struct {
	// ID is the client-side identifier of the item, if any.
	ID *string `json:"id,omitempty"`

	// ProductionType classifies the piece (e.g., "painel", "lona", "totem").
	ProductionType string `json:"production_type"`

	// Description is free text describing the piece.
	Description string `json:"description"`

	// Width in centimeters.
	Width *float64 `json:"width,omitempty"`

	// Height in centimeters.
	Height *float64 `json:"height,omitempty"`

	// Value is the base price of the piece in reais.
	Value *float64 `json:"value,omitempty"`

	// AdditionalValue is the price of extras (finishing, ilhós...) in reais.
	AdditionalValue *float64 `json:"additional_value,omitempty"`

	// Seller is the salesperson responsible for the item.
	Seller *string `json:"seller,omitempty"`

	// Designer is the designer responsible for the artwork.
	Designer *string `json:"designer,omitempty"`

	// Fabric is the fabric the piece is printed on.
	Fabric *string `json:"fabric,omitempty"`

	// Material is any other material used.
	Material *string `json:"material,omitempty"`

	// Finishes maps a finishing option (e.g., "bainha", "overloque") to whether it applies.
	Finishes map[string]bool `json:"finishes,omitempty"`

	// Ilhos is the grommet configuration, when the piece has any.
	Ilhos *IlhosConfig `json:"ilhos,omitempty"`
}

// Validate checks that every present numeric field, the ilhós price and
// spacing included, is finite and non-negative.
//
// Returns:
//   - error: ErrNonFiniteItemField or ErrNegativeItemField naming the
//     first offending field
func (p ProductionItem) Validate() error {
	type numericField struct {
		name  string
		value *float64
	}

	fields := []numericField{
		{"width", p.Width},
		{"height", p.Height},
		{"value", p.Value},
		{"additional_value", p.AdditionalValue},
	}
	if p.Ilhos != nil {
		fields = append(fields,
			numericField{"ilhos.unit_price", &p.Ilhos.UnitPrice},
			numericField{"ilhos.spacing", &p.Ilhos.Spacing},
		)
	}

	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			return fmt.Errorf("%w: %s", ErrNonFiniteItemField, f.name)
		}
		if *f.value < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeItemField, f.name)
		}
	}

	return nil
}

// HasDimensions reports whether both width and height are present.
func (p ProductionItem) HasDimensions() bool {
	return p.Width != nil && p.Height != nil
}

// Dimension returns the item's size, if both sides are known.
//
// Returns:
//   - valueobject.Dimension: the size
//   - bool: false if width or height is missing
func (p ProductionItem) Dimension() (valueobject.Dimension, bool) {
	if !p.HasDimensions() {
		return valueobject.Dimension{}, false
	}
	return valueobject.NewDimension(*p.Width, *p.Height), true
}

// TotalValue returns value + additional value, each defaulting to zero.
func (p ProductionItem) TotalValue() float64 {
	var total float64
	if p.Value != nil {
		total += *p.Value
	}
	if p.AdditionalValue != nil {
		total += *p.AdditionalValue
	}
	return total
}
