package handler

import (
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"nyn_restaurant/config"
	"nyn_restaurant/constants"
	"nyn_restaurant/database"
	"nyn_restaurant/helper"
	"nyn_restaurant/model"
	"nyn_restaurant/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jordan-wright/email"
)

// CreateConsultation takes a catering inquiry, persists it, and fires a
// best-effort notification to the events inbox. Email failure never fails the
// request; the row is already written.
func CreateConsultation(c *fiber.Ctx) error {
	input, ok := c.Locals("consultationInput").(model.CreateConsultationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing consultation input"))
	}

	consultation := model.Consultation{
		ReferenceNumber: helper.GenerateConsultationRef(time.Now()),
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		EventType:       input.EventType,
		EventDate:       input.EventDate,
		GuestCount:      input.GuestCount,
		Message:         input.Message,
		Status:          "new",
	}

	if err := database.DB.Create(&consultation).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save consultation request", err)
	}

	go notifyConsultation(consultation)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":              consultation.ID,
		"referenceNumber": consultation.ReferenceNumber,
	})
}

func notifyConsultation(consultation model.Consultation) {
	host := config.Config("SMTP_HOST")
	to := config.Config("CATERING_NOTIFY_EMAIL")
	if host == "" || to == "" {
		log.Printf("SMTP not configured, skipping notification for consultation %s", consultation.ReferenceNumber)
		return
	}

	e := email.NewEmail()
	e.From = config.Config("SMTP_FROM")
	e.To = []string{to}
	e.Subject = fmt.Sprintf("New catering inquiry %s (%s)", consultation.ReferenceNumber, consultation.EventType)
	e.Text = []byte(fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nEvent: %s\nDate: %s\nGuests: %d\n\n%s\n",
		consultation.Name, consultation.Email, consultation.Phone,
		consultation.EventType, consultation.EventDate, consultation.GuestCount,
		consultation.Message,
	))

	addr := host + ":" + config.ConfigOr("SMTP_PORT", "587")
	auth := smtp.PlainAuth("", config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"), host)
	if err := e.Send(addr, auth); err != nil {
		log.Printf("failed to send consultation notification %s: %v", consultation.ReferenceNumber, err)
	}
}

// GetConsultations lists catering inquiries for staff follow-up.
func GetConsultations(c *fiber.Ctx) error {
	var consultations []model.Consultation
	if err := database.DB.Order("created_at desc").Find(&consultations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load consultations", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, consultations)
}
