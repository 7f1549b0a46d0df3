package model

type CheckoutItemInput struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Qty         int     `json:"qty" validate:"required,gte=1"`
	CategoryKey string  `json:"categoryKey" validate:"required"`
	Image       string  `json:"image"`
}

// CheckoutInput is the cart snapshot handed to the payment gateway.
type CheckoutInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`

	Items []CheckoutItemInput `json:"items" validate:"required,min=1,dive"`

	Subtotal     float64 `json:"subtotal" validate:"gte=0"`
	Discount     float64 `json:"discount" validate:"gte=0"`
	Tax          float64 `json:"tax" validate:"gte=0"`
	PackagingFee float64 `json:"packagingFee" validate:"gte=0"`
	Tip          float64 `json:"tip" validate:"gte=0"`
	Total        float64 `json:"total" validate:"gt=0"`

	PickupTime   string `json:"pickupTime"`
	Instructions string `json:"instructions"`

	PromoCode  string  `json:"promoCode"`
	PromoType  string  `json:"promoType"`
	PromoValue float64 `json:"promoValue"`
}

// CheckoutSession is one row per charge handed to the gateway, keyed by the
// payment reference. Backs the confirmation lookup's "still processing" answer.
type CheckoutSession struct {
	DTO
	PaymentReference string `gorm:"uniqueIndex;not null;size:255" json:"paymentReference"`
	Kind             string `gorm:"not null" json:"kind"` // payment_intent, checkout_session
	AmountCents      int64  `gorm:"not null" json:"amountCents"`
	Email            string `json:"email"`
}
