package handler

import (
	"fmt"

	"nyn_restaurant/database"
	"nyn_restaurant/helper"
	"nyn_restaurant/model"
	"nyn_restaurant/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const cartCookie = "cart_session"

// CartHandler serves the session cart endpoints over an explicitly injected
// store; the cart is deliberately not a hidden package global.
type CartHandler struct {
	Store *helper.CartStore
}

func NewCartHandler(store *helper.CartStore) *CartHandler {
	return &CartHandler{Store: store}
}

// sessionToken reads the cart cookie, issuing one on first contact.
func (h *CartHandler) sessionToken(c *fiber.Ctx) string {
	token := c.Cookies(cartCookie)
	if token == "" {
		token = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     cartCookie,
			Value:    token,
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
		})
	}
	return token
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	token := h.sessionToken(c)
	return utils.SuccessResponse(c, fiber.StatusOK, h.Store.Get(token))
}

type addCartItemInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	CategoryKey string  `json:"categoryKey"`
	Image       string  `json:"image"`
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var input addCartItemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid input: %s", err.Error()), err)
	}
	if input.Name == "" || input.CategoryKey == "" || input.Price <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Item name, category and a positive price are required", nil)
	}

	token := h.sessionToken(c)
	cart := h.Store.AddItem(token, helper.CartLine{
		Name:        input.Name,
		Price:       input.Price,
		CategoryKey: input.CategoryKey,
		Image:       input.Image,
	})
	return utils.SuccessResponse(c, fiber.StatusOK, cart)
}

type updateCartItemInput struct {
	Name        string `json:"name"`
	CategoryKey string `json:"categoryKey"`
	Qty         int    `json:"qty"`
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var input updateCartItemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid input: %s", err.Error()), err)
	}
	if input.Name == "" || input.CategoryKey == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Item name and category are required", nil)
	}

	token := h.sessionToken(c)
	cart := h.Store.UpdateQty(token, input.Name, input.CategoryKey, input.Qty)
	return utils.SuccessResponse(c, fiber.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	name := c.Query("name")
	categoryKey := c.Query("categoryKey")
	if name == "" || categoryKey == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Item name and category are required", nil)
	}

	token := h.sessionToken(c)
	cart := h.Store.RemoveItem(token, name, categoryKey)
	return utils.SuccessResponse(c, fiber.StatusOK, cart)
}

func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	token := h.sessionToken(c)
	return utils.SuccessResponse(c, fiber.StatusOK, h.Store.Clear(token))
}

// ApplyPromo validates a code against the current cart subtotal and pins the
// result to the session. The check is advisory; checkout re-verifies it.
func (h *CartHandler) ApplyPromo(c *fiber.Ctx) error {
	var input model.ApplyPromoInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid input: %s", err.Error()), err)
	}

	token := h.sessionToken(c)
	cart := h.Store.Get(token)

	applied, reason, err := helper.ApplyPromo(database.DB, input.Code, cart.Subtotal)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check promo code", err)
	}
	if reason != "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, reason, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, h.Store.SetPromo(token, applied))
}
