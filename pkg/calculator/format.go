package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of fraction digits shown for results and conversions.
const Places int32 = 4

// FormatFixed renders v with exactly Places fraction digits. Rounding works
// on the exact binary value of v, so 1.00005 (stored just below the half)
// renders as 1.0000.
func FormatFixed(v float64) string {
	return decimal.NewFromFloatWithExponent(v, -Places).StringFixed(Places)
}

// Plain renders v as a plain decimal string without exponent notation, using
// the shortest representation that round-trips.
func Plain(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// Convert multiplies a displayed amount by rate and rounds to Places
// fraction digits. An empty amount converts to an empty string.
func Convert(amount string, rate float64) (string, error) {
	if amount == "" {
		return "", nil
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return d.Mul(decimal.NewFromFloat(rate)).StringFixed(Places), nil
}

// Invert returns 1/rate rounded to Places fraction digits. A zero rate has no
// inverse.
func Invert(rate float64) (string, error) {
	r := decimal.NewFromFloat(rate)
	if r.IsZero() {
		return "", fmt.Errorf("cannot invert zero rate")
	}
	return decimal.NewFromInt(1).DivRound(r, Places).StringFixed(Places), nil
}
