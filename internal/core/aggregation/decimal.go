package aggregation

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// reportPlaces is the number of fractional digits in rendered temperatures.
const reportPlaces = 2

// RoundFixed rounds v to two decimal places, half away from zero, working on
// the shortest decimal representation of v rather than its exact binary value.
// 2.675 therefore rounds to 2.68 even though the float64 nearest to 2.675 is
// slightly below it. It panics on non-finite input; check IsFinite first.
func RoundFixed(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(reportPlaces)
}

// FormatFixed renders v with exactly two fractional digits using RoundFixed.
// Non-finite values cannot be represented as decimals and fall back to strconv,
// giving "+Inf", "-Inf" or "NaN".
func FormatFixed(v float64) string {
	if !IsFinite(v) {
		return strconv.FormatFloat(v, 'f', reportPlaces, 64)
	}
	return RoundFixed(v).StringFixed(reportPlaces)
}

// IsFinite reports whether v can go through RoundFixed. A mean over readings
// whose sum overflows float64 is +Inf or -Inf.
func IsFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
