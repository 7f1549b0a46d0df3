package validate

import (
	"fmt"

	"nyn_restaurant/constants"
	"nyn_restaurant/model"
	"nyn_restaurant/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateConsultation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateConsultationInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if !utils.IsValidEmail(input.Email) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email is not valid",
			})
		}

		if !utils.IsValidPhone(input.Phone) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Phone number is not valid",
			})
		}

		if !utils.IsValidValueOfConstant(input.EventType, constants.CONSULTATION_EVENT_TYPES) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Unknown event type %q", input.EventType),
			})
		}

		c.Locals("consultationInput", input)

		return c.Next()
	}
}
