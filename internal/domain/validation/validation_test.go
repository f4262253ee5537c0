package validation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name         string
		width        float64
		height       float64
		wantValid    bool
		wantErrors   []string
		wantWarnings []string
	}{
		{"Regular piece", 100, 50, true, []string{}, []string{}},
		{"Zero width", 0, 10, false, []string{MsgWidthNotPositive}, []string{}},
		{"Both non-positive", -1, 0, false, []string{MsgWidthNotPositive, MsgHeightNotPositive}, []string{}},
		{"Large but allowed", 600, 10, true, []string{}, []string{MsgLargeDimensions}},
		{"Exactly the maximum", 1000, 1000, true, []string{}, []string{MsgLargeDimensions}},
		{"Too wide", 1001, 10, false, []string{MsgWidthTooLarge}, []string{MsgLargeDimensions}},
		{"Too tall and negative width", -5, 2000, false, []string{MsgWidthNotPositive, MsgHeightTooLarge}, []string{MsgLargeDimensions}},
		{"Exactly 500 does not warn", 500, 500, true, []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDimensions(tt.width, tt.height)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantErrors, got.Errors)
			assert.Equal(t, tt.wantWarnings, got.Warnings)
		})
	}
}

func TestValidateMoneyValue(t *testing.T) {
	tests := []struct {
		name         string
		value        float64
		wantValid    bool
		wantErrors   []string
		wantWarnings []string
	}{
		{"Regular value", 150, true, []string{}, []string{}},
		{"Zero", 0, false, []string{MsgValueNotPositive}, []string{}},
		{"Negative", -10, false, []string{MsgValueNotPositive}, []string{}},
		{"High value", 10000.01, true, []string{}, []string{MsgHighValue}},
		{"Exactly the maximum", 999999.99, true, []string{}, []string{MsgHighValue}},
		{"Above the maximum", 1000000, false, []string{MsgValueTooHigh}, []string{MsgHighValue}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateMoneyValue(tt.value)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantErrors, got.Errors)
			assert.Equal(t, tt.wantWarnings, got.Warnings)
		})
	}
}

func TestValidateIlhosConfig(t *testing.T) {
	tests := []struct {
		name         string
		quantity     uint32
		unitPrice    float64
		spacing      float64
		wantErrors   []string
		wantWarnings []string
	}{
		{"Regular config", 8, 0.5, 30, []string{}, []string{}},
		{"Zero quantity", 0, 0.5, 30, []string{MsgIlhosQuantityZero}, []string{}},
		{"Many ilhós", 60, 0.5, 30, []string{}, []string{MsgManyIlhos}},
		{"Too many ilhós", 101, 0.5, 30, []string{MsgIlhosQuantityTooHigh}, []string{MsgManyIlhos}},
		{"Everything wrong", 0, 0, -1, []string{MsgIlhosQuantityZero, MsgUnitPriceNotPositive, MsgSpacingNotPositive}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateIlhosConfig(tt.quantity, tt.unitPrice, tt.spacing)
			assert.Equal(t, len(tt.wantErrors) == 0, got.Valid)
			assert.Equal(t, tt.wantErrors, got.Errors)
			assert.Equal(t, tt.wantWarnings, got.Warnings)
		})
	}
}

func TestResult_WarningsNeverAffectValidity(t *testing.T) {
	got := ValidateDimensions(900, 900)
	assert.True(t, got.Valid)
	assert.NotEmpty(t, got.Warnings)
}

func TestIsValidCPF(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"52998224725", true},
		{"529.982.247-25", true},
		{"111.444.777-35", true},
		{"11111111111", false},
		{"00000000000", false},
		{"52998224724", false},
		{"52998224715", false},
		{"5299822472", false},
		{"529982247250", false},
		{"", false},
		{"abc.def.ghi-jk", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidCPF(tt.input))
		})
	}
}

func TestIsValidCPF_SingleDigitChangesAreDetected(t *testing.T) {
	for _, valid := range []string{"52998224725", "11144477735"} {
		for pos := 0; pos < len(valid); pos++ {
			original := int(valid[pos] - '0')
			for delta := 1; delta <= 9; delta++ {
				altered := valid[:pos] + strconv.Itoa((original+delta)%10) + valid[pos+1:]
				assert.False(t, IsValidCPF(altered), "altered CPF %s should be rejected", altered)
			}
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"cliente@example.com", true},
		{"a.b+c@sub.domain.com.br", true},
		{"no-at-sign.com", false},
		{"two@@example.com", false},
		{"missing@tld", false},
		{"spaces in@example.com", false},
		{"@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidEmail(tt.input))
		})
	}
}
