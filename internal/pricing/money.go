package pricing

import "github.com/shopspring/decimal"

// All price arithmetic runs through decimal so repeated multiplier math
// never accumulates float error. Models keep float64 at the JSON edge.

// Round2 rounds to 2 decimal places, half up.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// MulRound multiplies a price by a multiplier and rounds to 2 places.
func MulRound(price, multiplier float64) float64 {
	f, _ := decimal.NewFromFloat(price).
		Mul(decimal.NewFromFloat(multiplier)).
		Round(2).
		Float64()
	return f
}

// Sum2 adds prices and rounds the total to 2 places.
func Sum2(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}
