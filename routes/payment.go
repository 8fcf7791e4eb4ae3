package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/harmony-booking/controllers"
	"github.com/meinhoongagan/harmony-booking/middleware"
)

// SetupPaymentRoutes configures all payment related routes
func SetupPaymentRoutes(app *fiber.App) {
	payments := app.Group("/payments", middleware.Protected())

	payments.Post("/", controllers.CreatePayment)
	payments.Get("/", controllers.GetUserPayments)
	payments.Get("/:id", controllers.GetPayment)
	payments.Post("/:id/process", controllers.ProcessPayment)
}
