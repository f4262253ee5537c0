// Package valueobject contains the immutable values the calculation engine
// works with: piece dimensions, computed areas and amounts of money.
// Every operation returns a new value and never mutates its receiver, so the
// functions in this package are safe for concurrent use.
//
// Numbers shown to users follow the Brazilian locale: "." groups thousands and
// "," separates the two decimal places (e.g., 1.234,56).
package valueobject

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// ThousandsSeparator groups the integer digits in blocks of three.
	ThousandsSeparator = "."

	// DecimalSeparator separates the integer part from the cents.
	DecimalSeparator = ","
)

// FormatBrazilianDecimal formats a number with two decimal places in the
// Brazilian locale.
//
// The magnitude is rounded to whole hundredths before it is split, so a
// fraction that rounds up to 100 carries into the integer part
// (0.999 becomes "1,00"). A negative sign is placed outside the grouped
// digits and is dropped when the rounded magnitude is zero. Magnitudes of
// 1e15 and above are rounded with decimal arithmetic, so 1e17 formats as
// "100.000.000.000.000.000,00".
//
// Parameters:
//   - value: the number to format
//
// Returns:
//   - string: formatted number (e.g., 1234.5 -> "1.234,50", -7.1 -> "-7,10")
func FormatBrazilianDecimal(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0" + DecimalSeparator + "00"
	}

	integerDigits, fractionDigits := splitHundredths(math.Abs(value))

	var b strings.Builder
	if value < 0 && (integerDigits != "0" || fractionDigits != "00") {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(integerDigits))
	b.WriteString(DecimalSeparator)
	b.WriteString(fractionDigits)

	return b.String()
}

// maxCentMagnitude is the largest magnitude formatted through int64
// hundredths; abs*100 stays well inside the int64 range below it.
const maxCentMagnitude = 1e15

// splitHundredths rounds a non-negative magnitude to two decimals and returns
// the integer digits and the two fraction digits. Magnitudes too large for
// int64 hundredths are rounded in decimal instead.
func splitHundredths(abs float64) (string, string) {
	if abs >= maxCentMagnitude {
		integer, fraction, _ := strings.Cut(decimal.NewFromFloat(abs).StringFixed(2), ".")
		return integer, fraction
	}

	hundredths := int64(math.Round(abs * 100))
	fraction := strconv.FormatInt(hundredths%100, 10)
	if len(fraction) < 2 {
		fraction = "0" + fraction
	}
	return strconv.FormatInt(hundredths/100, 10), fraction
}

// FormatBrazilianMoney formats a monetary amount for display.
// It is the money-facing name of FormatBrazilianDecimal and carries no
// currency symbol.
//
// Parameters:
//   - value: amount in reais (e.g., 19.9)
//
// Returns:
//   - string: formatted amount (e.g., "19,90")
func FormatBrazilianMoney(value float64) string {
	return FormatBrazilianDecimal(value)
}

// groupThousands puts a dot between each block of three digits counted from
// the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	for i, digit := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(ThousandsSeparator)
		}
		b.WriteRune(digit)
	}
	return b.String()
}

// ParseNumberSafe parses a number written in the Brazilian locale.
// Thousands dots are discarded and the decimal comma becomes the decimal
// point. Input that still does not parse yields zero.
//
// Parameters:
//   - input: text such as "1.234,56", "12,5" or "42"
//
// Returns:
//   - float64: the parsed number, or 0 when the input is not a number
func ParseNumberSafe(input string) float64 {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.ReplaceAll(cleaned, ThousandsSeparator, "")
	cleaned = strings.Replace(cleaned, DecimalSeparator, ".", 1)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
