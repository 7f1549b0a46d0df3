package model

import "time"

type Promotion struct {
	DTO
	Code       string     `gorm:"unique;not null" json:"code"` // stored uppercase
	Type       string     `gorm:"not null" json:"type"`        // percent, fixed
	Value      float64    `gorm:"type:decimal(10,2);not null" json:"value"`
	Active     bool       `gorm:"default:true" json:"active"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	UsageLimit *int       `json:"usageLimit,omitempty"`
	UsageCount int        `gorm:"default:0" json:"usageCount"`
	MinOrder   *float64   `gorm:"type:decimal(10,2)" json:"minOrder,omitempty"`
}

type Promotions []Promotion

type ApplyPromoInput struct {
	Code string `json:"code"`
}
