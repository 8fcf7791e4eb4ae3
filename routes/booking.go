package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/harmony-booking/controllers"
	"github.com/meinhoongagan/harmony-booking/middleware"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App) {
	bookings := app.Group("/bookings", middleware.Protected())

	bookings.Post("/", controllers.CreateBooking)
	bookings.Get("/", controllers.GetUserBookings)
	bookings.Get("/:id", controllers.GetBooking)
	bookings.Patch("/:id/status", controllers.UpdateBookingStatus)
	bookings.Post("/:id/cancel", controllers.CancelBooking)
	bookings.Post("/:id/staff", controllers.AssignStaffToBooking)
}
