package helper

import (
	"testing"
	"time"

	"nyn_restaurant/constants"
	"nyn_restaurant/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestNormalizePromoCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizePromoCode("  save10 "))
	assert.Equal(t, "SAVE10", NormalizePromoCode("Save10"))
	assert.Equal(t, "", NormalizePromoCode("   "))
}

func TestValidatePromo_Applies(t *testing.T) {
	now := time.Now()
	promo := &model.Promotion{
		Code:   "SAVE10",
		Type:   constants.PROMO_PERCENT,
		Value:  10,
		Active: true,
	}

	applied, reason := ValidatePromo(promo, 52.0, now)
	require.Empty(t, reason)
	require.NotNil(t, applied)
	assert.Equal(t, "SAVE10", applied.Code)
	assert.Equal(t, 5.2, applied.Discount)
}

func TestValidatePromo_Inactive(t *testing.T) {
	promo := &model.Promotion{Code: "SAVE10", Type: constants.PROMO_PERCENT, Value: 10, Active: false}

	applied, reason := ValidatePromo(promo, 52.0, time.Now())
	assert.Nil(t, applied)
	assert.Equal(t, "This promo code is no longer active", reason)
}

func TestValidatePromo_Expired(t *testing.T) {
	promo := &model.Promotion{
		Code:      "SAVE10",
		Type:      constants.PROMO_PERCENT,
		Value:     10,
		Active:    true,
		ExpiresAt: timePtr(time.Now().Add(-time.Hour)),
	}

	applied, reason := ValidatePromo(promo, 52.0, time.Now())
	assert.Nil(t, applied)
	assert.Equal(t, "This promo code has expired", reason)
}

func TestValidatePromo_UsageLimitReached(t *testing.T) {
	promo := &model.Promotion{
		Code:       "ONCE",
		Type:       constants.PROMO_FIXED,
		Value:      5,
		Active:     true,
		UsageLimit: intPtr(1),
		UsageCount: 1,
	}

	applied, reason := ValidatePromo(promo, 52.0, time.Now())
	assert.Nil(t, applied)
	assert.Equal(t, "This promo code has reached its usage limit", reason)
}

func TestValidatePromo_UsageLimitRemaining(t *testing.T) {
	promo := &model.Promotion{
		Code:       "ONCE",
		Type:       constants.PROMO_FIXED,
		Value:      5,
		Active:     true,
		UsageLimit: intPtr(2),
		UsageCount: 1,
	}

	applied, reason := ValidatePromo(promo, 52.0, time.Now())
	assert.Empty(t, reason)
	assert.NotNil(t, applied)
}

func TestValidatePromo_MinOrder(t *testing.T) {
	promo := &model.Promotion{
		Code:     "SAVE10",
		Type:     constants.PROMO_PERCENT,
		Value:    10,
		Active:   true,
		MinOrder: floatPtr(20),
	}

	applied, reason := ValidatePromo(promo, 14.0, time.Now())
	assert.Nil(t, applied)
	assert.Equal(t, "A minimum order of $20.00 is required", reason)

	applied, reason = ValidatePromo(promo, 20.0, time.Now())
	assert.Empty(t, reason)
	assert.NotNil(t, applied)
}

func TestValidatePromo_CheckOrder(t *testing.T) {
	// inactive wins over every other failure
	promo := &model.Promotion{
		Code:       "DEAD",
		Type:       constants.PROMO_FIXED,
		Value:      5,
		Active:     false,
		ExpiresAt:  timePtr(time.Now().Add(-time.Hour)),
		UsageLimit: intPtr(0),
		MinOrder:   floatPtr(100),
	}

	_, reason := ValidatePromo(promo, 1.0, time.Now())
	assert.Equal(t, "This promo code is no longer active", reason)
}
