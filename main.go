package main

import (
	"log"

	"nyn_restaurant/config"
	"nyn_restaurant/database"
	"nyn_restaurant/handler"
	"nyn_restaurant/helper"
	"nyn_restaurant/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, Stripe-Signature",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartPromoExpiryScheduler()
	defer helper.StopPromoExpiryScheduler()
	handler.StartUrgencyBroadcaster()
	defer handler.StopUrgencyBroadcaster()

	carts := helper.NewCartStore()
	router.SetupRoutes(app, carts)

	log.Fatal(app.Listen(":" + config.ConfigOr("PORT", "8002")))
}
