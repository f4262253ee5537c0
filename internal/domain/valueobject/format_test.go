package valueobject

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBrazilianDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Zero", 0, "0,00"},
		{"Thousands with one decimal", 1234.5, "1.234,50"},
		{"Negative below one thousand", -7.1, "-7,10"},
		{"Exactly three digits", 999, "999,00"},
		{"Exactly four digits", 1000, "1.000,00"},
		{"Millions", 1234567.89, "1.234.567,89"},
		{"Negative millions", -1234567.89, "-1.234.567,89"},
		{"Single cent", 0.01, "0,01"},
		{"Fraction carries into integer", 0.999, "1,00"},
		{"Carry adds a thousands group", 999.999, "1.000,00"},
		{"Negative rounding to zero drops sign", -0.001, "0,00"},
		{"NaN", math.NaN(), "0,00"},
		{"Infinity", math.Inf(1), "0,00"},
		{"Hundreds of billions", 123456789012.34, "123.456.789.012,34"},
		{"Above int64 cents", 1e17, "100.000.000.000.000.000,00"},
		{"Negative above int64 cents", -1e19, "-10.000.000.000.000.000.000,00"},
		{"Large with fraction", 1.5e15, "1.500.000.000.000.000,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBrazilianDecimal(tt.input))
		})
	}
}

func TestFormatBrazilianMoney_MatchesDecimal(t *testing.T) {
	for _, v := range []float64{0, 1.5, 19.99, 1234.56, -42} {
		assert.Equal(t, FormatBrazilianDecimal(v), FormatBrazilianMoney(v))
	}
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "0", groupThousands("0"))
	assert.Equal(t, "123", groupThousands("123"))
	assert.Equal(t, "12.345", groupThousands("12345"))
	assert.Equal(t, "123.456", groupThousands("123456"))
	assert.Equal(t, "1.000.000", groupThousands("1000000"))
}

func TestFormatBrazilianDecimal_HugeMagnitude(t *testing.T) {
	got := FormatBrazilianDecimal(1e300)

	assert.True(t, strings.HasPrefix(got, "1.000.000"), got)
	assert.True(t, strings.HasSuffix(got, ".000,00"), got)
	assert.NotContains(t, got, "-")
	// 301 integer digits in 101 groups, plus ",00".
	assert.Len(t, got, 301+100+3)
}

func TestParseNumberSafe(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1.234,56", 1234.56},
		{"12,5", 12.5},
		{"42", 42},
		{" 7,25 ", 7.25},
		{"-3,5", -3.5},
		{"", 0},
		{"abc", 0},
		{"1,2,3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParseNumberSafe(tt.input), 1e-9)
		})
	}
}
