package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"nyn_restaurant/model"

	"gorm.io/gorm"
)

// AppliedPromo is the session-scoped result of a successful promo application.
type AppliedPromo struct {
	Code     string  `json:"code"`
	Type     string  `json:"type"`
	Value    float64 `json:"value"`
	Discount float64 `json:"discount"`
}

// NormalizePromoCode trims and uppercases; codes are case-insensitive.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidatePromo runs the eligibility checks in order, first failure wins.
// The reason string is user-facing; empty means the promotion applies.
func ValidatePromo(promo *model.Promotion, subtotal float64, now time.Time) (*AppliedPromo, string) {
	if !promo.Active {
		return nil, "This promo code is no longer active"
	}
	if promo.ExpiresAt != nil && promo.ExpiresAt.Before(now) {
		return nil, "This promo code has expired"
	}
	if promo.UsageLimit != nil && promo.UsageCount >= *promo.UsageLimit {
		return nil, "This promo code has reached its usage limit"
	}
	if promo.MinOrder != nil && subtotal < *promo.MinOrder {
		return nil, fmt.Sprintf("A minimum order of $%.2f is required", *promo.MinOrder)
	}

	return &AppliedPromo{
		Code:     promo.Code,
		Type:     promo.Type,
		Value:    promo.Value,
		Discount: ComputeDiscount(promo.Type, promo.Value, subtotal),
	}, ""
}

// ApplyPromo looks up a code and validates it against the current subtotal.
// This check is advisory: it runs against possibly stale counters and is
// re-run server-side at checkout time.
func ApplyPromo(db *gorm.DB, code string, subtotal float64) (*AppliedPromo, string, error) {
	norm := NormalizePromoCode(code)
	if norm == "" {
		return nil, "Please enter a promo code", nil
	}

	var promo model.Promotion
	if err := db.Where("UPPER(code) = ?", norm).First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "Invalid promo code", nil
		}
		return nil, "", err
	}

	applied, reason := ValidatePromo(&promo, subtotal, time.Now())
	return applied, reason, nil
}
