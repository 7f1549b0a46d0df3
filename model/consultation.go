package model

type Consultation struct {
	DTO
	ReferenceNumber string `gorm:"unique;size:20" json:"referenceNumber"`
	Name            string `gorm:"not null" json:"name"`
	Email           string `gorm:"not null" json:"email"`
	Phone           string `gorm:"not null" json:"phone"`
	EventType       string `gorm:"not null" json:"eventType"` // wedding, corporate, birthday, other
	EventDate       string `json:"eventDate"`
	GuestCount      int    `json:"guestCount"`
	Message         string `gorm:"type:text" json:"message"`
	Status          string `gorm:"default:'new'" json:"status"` // new, contacted, closed
}

type CreateConsultationInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	EventType  string `json:"eventType" validate:"required"`
	EventDate  string `json:"eventDate"`
	GuestCount int    `json:"guestCount" validate:"omitempty,gte=0"`
	Message    string `json:"message"`
}
