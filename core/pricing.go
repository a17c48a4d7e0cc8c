package core

import "github.com/shopspring/decimal"

// displayDecimals is the number of decimal places between the smallest
// currency unit and the display unit (e.g. 4 => 1 display unit = 10000
// base units).
const displayDecimals int32 = 4

// DisplayAmount converts a base-unit amount to its display-currency
// decimal value. Base-unit integers stay exact through the conversion.
func DisplayAmount(amount Amount) decimal.Decimal {
	return decimal.NewFromUint64(amount).Shift(-displayDecimals)
}

// FormatAmount renders a base-unit amount as a display-currency string
// with fixed precision, for logs and wire snapshots.
func FormatAmount(amount Amount) string {
	return DisplayAmount(amount).StringFixed(displayDecimals)
}
