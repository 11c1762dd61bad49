package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/entregas/internal/handlers"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB) {
	authHandler := handlers.NewAuthHandler(db)
	userHandler := handlers.NewUserHandler(db)
	deliveryHandler := handlers.NewDeliveryHandler(db)

	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)

	users := app.Group("/users")
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)

	deliveries := app.Group("/deliveries")
	deliveries.Post("/", deliveryHandler.CreateDelivery)
	deliveries.Get("/user/:user_id", deliveryHandler.ListByUser)
	deliveries.Get("/details/:id", deliveryHandler.GetDeliveryDetails)
	deliveries.Get("/:id", deliveryHandler.GetDelivery)
	deliveries.Put("/:id/confirm", deliveryHandler.ConfirmDelivery)
}
