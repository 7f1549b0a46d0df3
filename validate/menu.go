package validate

import (
	"errors"
	"fmt"

	"nyn_restaurant/constants"
	"nyn_restaurant/helper"
	"nyn_restaurant/model"
	"nyn_restaurant/utils"

	"github.com/gofiber/fiber/v2"
)

func menuItemInput(localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateMenuItemInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals(localKey, input)

		return c.Next()
	}
}

func CreateMenuItem() fiber.Handler {
	return menuItemInput("menuItemInput")
}

func EditMenuItem() fiber.Handler {
	return menuItemInput("menuItemInput")
}

func UpdateInventory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateInventoryInput

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

		if input.OnHand == nil && input.ReorderLevel == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Nothing to update",
			})
		}

		c.Locals("inventoryInput", input)

		return c.Next()
	}
}
