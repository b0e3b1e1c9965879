// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/mf-returns/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return RoundTo(val, constants.CurrencyPlaces)
}

// RoundUnits rounds a fund unit count to three decimals.
func RoundUnits(val float64) float64 {
	return RoundTo(val, constants.UnitPlaces)
}

// RoundTo rounds half away from zero at the given number of places. Values
// that are not finite are returned unchanged.
func RoundTo(val float64, places int32) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	return decimal.NewFromFloat(val).Round(places).InexactFloat64()
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// IsPositiveFinite reports whether val is a usable divisor.
func IsPositiveFinite(val float64) bool {
	return val > 0 && !math.IsInf(val, 1)
}
