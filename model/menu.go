package model

type MenuItem struct {
	DTO
	Name        string  `gorm:"not null" json:"name"`
	Slug        string  `gorm:"unique;size:120" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryKey string  `gorm:"not null;index" json:"categoryKey"` // soups, mains, sides, desserts, drinks
	Image       string  `json:"image"`                             // cloudinary URL
	Available   bool    `gorm:"default:true" json:"available"`
}

type MenuItems []MenuItem

type CreateMenuItemInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	CategoryKey string  `json:"categoryKey" validate:"required"`
	Image       string  `json:"image"`
	Available   *bool   `json:"available"`
}

type InventoryItem struct {
	DTO
	Name         string  `gorm:"unique;not null" json:"name"`
	Unit         string  `json:"unit"` // kg, pcs, l
	OnHand       float64 `gorm:"default:0" json:"onHand"`
	ReorderLevel float64 `gorm:"default:0" json:"reorderLevel"`
}

type UpdateInventoryInput struct {
	OnHand       *float64 `json:"onHand" validate:"omitempty,gte=0"`
	ReorderLevel *float64 `json:"reorderLevel" validate:"omitempty,gte=0"`
}
