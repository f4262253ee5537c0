package valueobject

import (
	"fmt"
	"time"
)

// Dimension represents the printable size of a production piece.
// All measurements are in centimeters.
type Dimension struct {
	// Width in centimeters.
	Width float64 `json:"width"`

	// Height in centimeters.
	Height float64 `json:"height"`
}

// AreaResult is the area of a Dimension together with the inputs it came from.
type AreaResult struct {
	// Area is width × height, never rounded.
	Area float64 `json:"area"`

	// FormattedArea is the area in the Brazilian locale, rounded to two places.
	FormattedArea string `json:"formatted_area"`

	// Width is the width the area was computed from.
	Width float64 `json:"width"`

	// Height is the height the area was computed from.
	Height float64 `json:"height"`

	// Valid is false when either side is not positive; Area is then zero.
	Valid bool `json:"valid"`
}

// NewDimension creates a new Dimension value object.
//
// Parameters:
//   - width: Width in centimeters
//   - height: Height in centimeters
//
// Returns:
//   - Dimension: new Dimension value object
func NewDimension(width, height float64) Dimension {
	return Dimension{Width: width, Height: height}
}

// CalculateArea multiplies width by height.
// A non-positive side yields a result flagged invalid with a zero area; the
// original width and height are kept either way.
//
// Parameters:
//   - width: Width in centimeters
//   - height: Height in centimeters
//
// Returns:
//   - AreaResult: the area and its formatted representation
func CalculateArea(width, height float64) AreaResult {
	if width <= 0 || height <= 0 {
		return AreaResult{
			Area:          0,
			FormattedArea: FormatBrazilianDecimal(0),
			Width:         width,
			Height:        height,
			Valid:         false,
		}
	}

	area := width * height
	return AreaResult{
		Area:          area,
		FormattedArea: FormatBrazilianDecimal(area),
		Width:         width,
		Height:        height,
		Valid:         true,
	}
}

// CalculateBatchAreas computes the area of every dimension in order.
//
// Parameters:
//   - dims: the dimensions to compute
//
// Returns:
//   - []AreaResult: one result per input, in input order
//   - time.Duration: time spent computing (for observability only)
func CalculateBatchAreas(dims []Dimension) ([]AreaResult, time.Duration) {
	start := time.Now()

	results := make([]AreaResult, len(dims))
	for i, d := range dims {
		results[i] = d.Area()
	}

	return results, time.Since(start)
}

// Area calculates the area of the dimension.
//
// Returns:
//   - AreaResult: see CalculateArea
func (d Dimension) Area() AreaResult {
	return CalculateArea(d.Width, d.Height)
}

// String returns a formatted string representation.
//
// Returns:
//   - string: formatted dimension (e.g., "100.0x50.0 cm")
func (d Dimension) String() string {
	return fmt.Sprintf("%.1fx%.1f cm", d.Width, d.Height)
}
