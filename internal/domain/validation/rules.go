package validation

// Limits enforced by the validators. Dimensions are in centimeters and money
// in reais.
const (
	MaxDimension     = 1000.0
	LargeDimension   = 500.0
	MaxMoneyValue    = 999999.99
	HighMoneyValue   = 10000.0
	MaxIlhosQuantity = 100
	ManyIlhos        = 50
)

// Messages produced by the validators.
const (
	MsgWidthNotPositive     = "width must be greater than zero"
	MsgHeightNotPositive    = "height must be greater than zero"
	MsgWidthTooLarge        = "width is too large (maximum 1000 cm)"
	MsgHeightTooLarge       = "height is too large (maximum 1000 cm)"
	MsgLargeDimensions      = "dimensions are very large, check that they are correct"
	MsgValueNotPositive     = "value must be greater than zero"
	MsgValueTooHigh         = "value is too high (maximum R$ 999.999,99)"
	MsgHighValue            = "high value, confirm that it is correct"
	MsgIlhosQuantityZero    = "ilhós quantity must be greater than zero"
	MsgIlhosQuantityTooHigh = "maximum ilhós quantity is 100"
	MsgUnitPriceNotPositive = "unit price must be greater than zero"
	MsgSpacingNotPositive   = "spacing must be greater than zero"
	MsgManyIlhos            = "many ilhós, confirm that it is correct"
)

// ValidateDimensions checks the width and height of a piece in centimeters.
func ValidateDimensions(width, height float64) Result {
	var c collector

	c.errorIf(width <= 0, MsgWidthNotPositive)
	c.errorIf(height <= 0, MsgHeightNotPositive)
	c.errorIf(width > MaxDimension, MsgWidthTooLarge)
	c.errorIf(height > MaxDimension, MsgHeightTooLarge)

	c.warnIf(width > LargeDimension || height > LargeDimension, MsgLargeDimensions)

	return c.result()
}

// ValidateMoneyValue checks a monetary amount in reais.
func ValidateMoneyValue(value float64) Result {
	var c collector

	c.errorIf(value <= 0, MsgValueNotPositive)
	c.errorIf(value > MaxMoneyValue, MsgValueTooHigh)

	c.warnIf(value > HighMoneyValue, MsgHighValue)

	return c.result()
}

// ValidateIlhosConfig checks a fastener configuration: how many ilhós, the
// price of each one and the spacing between them.
func ValidateIlhosConfig(quantity uint32, unitPrice, spacing float64) Result {
	var c collector

	c.errorIf(quantity == 0, MsgIlhosQuantityZero)
	c.errorIf(quantity > MaxIlhosQuantity, MsgIlhosQuantityTooHigh)
	c.errorIf(unitPrice <= 0, MsgUnitPriceNotPositive)
	c.errorIf(spacing <= 0, MsgSpacingNotPositive)

	c.warnIf(quantity > ManyIlhos, MsgManyIlhos)

	return c.result()
}
