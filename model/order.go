package model

import "time"

type Order struct {
	DTO
	OrderNumber      string `gorm:"size:20;index" json:"orderNumber"` // display label, not unique
	PaymentReference string `gorm:"uniqueIndex;not null;size:255" json:"paymentReference"`
	PaymentStatus    string `gorm:"not null" json:"paymentStatus"` // paid, pending, failed
	Status           string `gorm:"not null;index" json:"status"`  // pending → confirmed → preparing → ready → picked_up; cancelled

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Subtotal     float64 `gorm:"type:decimal(10,2)" json:"subtotal"`
	Discount     float64 `gorm:"type:decimal(10,2)" json:"discount"`
	Tax          float64 `gorm:"type:decimal(10,2)" json:"tax"`
	PackagingFee float64 `gorm:"type:decimal(10,2)" json:"packagingFee"`
	Tip          float64 `gorm:"type:decimal(10,2)" json:"tip"`
	Total        float64 `gorm:"type:decimal(10,2)" json:"total"`

	PromoCode  *string  `json:"promoCode,omitempty"`
	PromoType  *string  `json:"promoType,omitempty"`
	PromoValue *float64 `json:"promoValue,omitempty"`

	PickupTime   string `json:"pickupTime"`
	Instructions string `gorm:"type:text" json:"instructions"`

	Items []OrderItem `gorm:"foreignKey:OrderId" json:"items"`

	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

type OrderItem struct {
	DTO
	OrderId     uint    `gorm:"not null;index" json:"orderId"`
	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"` // unit price at purchase time
	Qty         int     `gorm:"not null" json:"qty"`
	CategoryKey string  `json:"categoryKey"`
	Image       string  `json:"image"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}
