package helper

import (
	"math"

	"nyn_restaurant/constants"
)

// Round2 rounds a dollar amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToCents converts a dollar total to gateway minor units.
func ToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func ComputeTax(taxable float64) float64 {
	return Round2(taxable * constants.TAX_RATE)
}

// ComputeDiscount applies a promotion to a subtotal. Fixed discounts are capped
// at the subtotal so the result stays in [0, subtotal].
func ComputeDiscount(promoType string, value, subtotal float64) float64 {
	if subtotal <= 0 || value <= 0 {
		return 0
	}
	var discount float64
	switch promoType {
	case constants.PROMO_PERCENT:
		discount = subtotal * value / 100
	case constants.PROMO_FIXED:
		discount = math.Min(value, subtotal)
	default:
		return 0
	}
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	return Round2(discount)
}
