package valueobject

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// MoneyValue represents an amount in Brazilian reais.
// The cent count is the source of truth; the float and the formatted string
// are derived from it so all three always agree.
//
// Example usage:
//
//	price := valueobject.ParseBrazilianMoney("R$ 1.234,56") // 123456 cents
//	total := price.Add(valueobject.NewMoneyFromCents(44))   // 1.235,00
type MoneyValue struct {
	// RawValue is the amount in reais (Cents / 100).
	RawValue float64 `json:"raw_value"`

	// FormattedValue is the amount in the Brazilian locale (e.g., "1.234,56").
	FormattedValue string `json:"formatted_value"`

	// Cents is the exact amount in the smallest currency unit.
	Cents int64 `json:"cents"`
}

// NewMoneyFromCents creates a MoneyValue from an exact cent count.
//
// Parameters:
//   - cents: amount in cents
//
// Returns:
//   - MoneyValue: the created value
func NewMoneyFromCents(cents int64) MoneyValue {
	raw := float64(cents) / 100.0
	return MoneyValue{
		RawValue:       raw,
		FormattedValue: FormatBrazilianMoney(raw),
		Cents:          cents,
	}
}

// maxMoneyReais is the largest amount whose cent count fits in an int64.
const maxMoneyReais = float64(math.MaxInt64) / 100

// NewMoneyFromFloat creates a MoneyValue from an amount in reais.
// The amount is rounded half away from zero to the nearest cent using
// decimal arithmetic, so 0.29 becomes 29 cents rather than 28.
// NaN yields zero and amounts beyond the int64 cent range saturate at
// math.MaxInt64 or -math.MaxInt64 cents instead of wrapping.
//
// Parameters:
//   - value: amount in reais (e.g., 19.99)
//
// Returns:
//   - MoneyValue: the created value
func NewMoneyFromFloat(value float64) MoneyValue {
	switch {
	case math.IsNaN(value):
		return ZeroMoney()
	case value >= maxMoneyReais:
		return NewMoneyFromCents(math.MaxInt64)
	case value <= -maxMoneyReais:
		return NewMoneyFromCents(-math.MaxInt64)
	}

	cents := decimal.NewFromFloat(value).Shift(2).Round(0).IntPart()
	return NewMoneyFromCents(cents)
}

// ZeroMoney returns a zero amount.
func ZeroMoney() MoneyValue {
	return NewMoneyFromCents(0)
}

// ParseBrazilianMoney converts free text into a MoneyValue.
//
// Every non-digit character is discarded and the remaining digits are read
// as a cent count, so "R$ 1.234,56", "1234,56" and "123456" are the same
// amount. The last two digits are always the cents: "12,3" and "123" are
// both 1,23. Empty or oversized input yields zero.
//
// Parameters:
//   - input: free text containing the amount
//
// Returns:
//   - MoneyValue: the parsed amount
func ParseBrazilianMoney(input string) MoneyValue {
	digits := strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, input)

	if digits == "" {
		return ZeroMoney()
	}

	cents, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return ZeroMoney()
	}
	return NewMoneyFromCents(cents)
}

// CalculateTotalMoney parses each formatted amount and sums them.
// The sum is taken over integer cents, so the result never drifts from the
// exact total the way a float accumulation would.
//
// Parameters:
//   - values: amounts as free text (see ParseBrazilianMoney)
//
// Returns:
//   - MoneyValue: the total
func CalculateTotalMoney(values []string) MoneyValue {
	var cents int64
	for _, v := range values {
		cents += ParseBrazilianMoney(v).Cents
	}
	return NewMoneyFromCents(cents)
}

// Add adds two amounts and returns a new MoneyValue.
//
// Parameters:
//   - other: the amount to add
//
// Returns:
//   - MoneyValue: the sum
func (m MoneyValue) Add(other MoneyValue) MoneyValue {
	return NewMoneyFromCents(m.Cents + other.Cents)
}

// IsZero checks if the amount is zero.
func (m MoneyValue) IsZero() bool {
	return m.Cents == 0
}

// IsPositive checks if the amount is greater than zero.
func (m MoneyValue) IsPositive() bool {
	return m.Cents > 0
}

// String returns the amount with the real symbol (e.g., "R$ 1.234,56").
func (m MoneyValue) String() string {
	if m.Cents < 0 {
		return "-R$ " + FormatBrazilianMoney(-m.RawValue)
	}
	return "R$ " + m.FormattedValue
}
