package router

import (
	"nyn_restaurant/handler"
	"nyn_restaurant/helper"
	"nyn_restaurant/middleware"
	"nyn_restaurant/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, carts *helper.CartStore) {
	api := app.Group("/api", logger.New())

	// Endpoints the storefront calls directly.
	api.Post("/consultation", validate.CreateConsultation(), handler.CreateConsultation)
	api.Post("/create-payment-intent", validate.Checkout(), handler.CreatePaymentIntent)
	api.Post("/create-checkout-session", validate.Checkout(), handler.CreateCheckoutSession)
	api.Post("/webhooks/stripe", handler.StripeWebhook)

	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	cart := v1.Group("/cart", logger.New())
	cartHandler := handler.NewCartHandler(carts)
	cart.Get("/", cartHandler.GetCart)
	cart.Post("/items", cartHandler.AddItem)
	cart.Patch("/items", cartHandler.UpdateItem)
	cart.Delete("/items", cartHandler.RemoveItem)
	cart.Delete("/", cartHandler.ClearCart)
	cart.Post("/promo", cartHandler.ApplyPromo)

	menu := v1.Group("/menu", logger.New())
	menu.Get("/", handler.GetMenu)
	menu.Post("/", middleware.Protected(), validate.CreateMenuItem(), handler.CreateMenuItem)
	menu.Put("/:itemId", middleware.Protected(), validate.GetById("itemId"), validate.EditMenuItem(), handler.EditMenuItem)
	menu.Delete("/:itemId", middleware.Protected(), validate.GetById("itemId"), handler.DeleteMenuItem)
	menu.Patch("/:itemId/availability/:available", middleware.Protected(), validate.GetById("itemId"), handler.SetMenuItemAvailability)

	orders := v1.Group("/orders", logger.New())
	orders.Get("/confirmation", handler.GetOrderConfirmation)
	orders.Get("/:orderNumber", handler.GetOrderByNumber)

	kitchen := v1.Group("/kitchen", logger.New())
	kitchen.Get("/orders", middleware.Protected(), handler.GetKitchenOrders)
	kitchen.Patch("/orders/:orderId/status", middleware.Protected(), validate.GetById("orderId"), validate.UpdateOrderStatus(), handler.UpdateOrderStatus)
	kitchen.Get("/stats", middleware.Protected(), handler.GetKitchenStats)
	kitchen.Get("/ws", middleware.Protected(), websocket.New(handler.KitchenWebsocket))

	admin := v1.Group("/admin", logger.New())
	admin.Get("/inventory", middleware.Protected(), handler.GetInventory)
	admin.Patch("/inventory/:itemId", middleware.Protected(), validate.GetById("itemId"), validate.UpdateInventory(), handler.UpdateInventory)
	admin.Get("/promotions", middleware.Protected(), handler.GetPromotions)
	admin.Get("/consultations", middleware.Protected(), handler.GetConsultations)
	admin.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)
}
