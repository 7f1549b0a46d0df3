package helper

import (
	"testing"

	"nyn_restaurant/constants"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 5.2, Round2(5.2000001))
	assert.Equal(t, 5.21, Round2(5.206))
	assert.Equal(t, 5.2, Round2(5.204))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 14.0, Round2(14))
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(1400), ToCents(14.00))
	assert.Equal(t, int64(520), ToCents(5.20))
	// 0.1+0.2 style float noise must not shift a cent
	assert.Equal(t, int64(30), ToCents(0.1+0.2))
}

func TestComputeTax(t *testing.T) {
	assert.Equal(t, Round2(52.0*constants.TAX_RATE), ComputeTax(52.0))
	assert.Equal(t, 0.0, ComputeTax(0))
}

func TestComputeDiscount_Percent(t *testing.T) {
	assert.Equal(t, 5.2, ComputeDiscount(constants.PROMO_PERCENT, 10, 52.0))
	assert.Equal(t, 0.0, ComputeDiscount(constants.PROMO_PERCENT, 0, 52.0))
}

func TestComputeDiscount_Fixed(t *testing.T) {
	assert.Equal(t, 5.0, ComputeDiscount(constants.PROMO_FIXED, 5, 52.0))
}

func TestComputeDiscount_Clamped(t *testing.T) {
	// fixed discount larger than the subtotal caps at the subtotal
	assert.Equal(t, 8.0, ComputeDiscount(constants.PROMO_FIXED, 20, 8.0))
	// negative values never produce a negative discount
	assert.Equal(t, 0.0, ComputeDiscount(constants.PROMO_FIXED, -5, 8.0))
	assert.Equal(t, 0.0, ComputeDiscount(constants.PROMO_PERCENT, -10, 8.0))
}

func TestComputeDiscount_UnknownType(t *testing.T) {
	assert.Equal(t, 0.0, ComputeDiscount("bogus", 10, 52.0))
}
