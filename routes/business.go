package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/harmony-booking/controllers"
	"github.com/meinhoongagan/harmony-booking/middleware"
)

// SetupBusinessRoutes configures all business related routes
func SetupBusinessRoutes(app *fiber.App) {
	businesses := app.Group("/businesses")

	// Public routes
	businesses.Get("/", controllers.GetBusinesses)
	businesses.Get("/:id", controllers.GetBusiness)
	businesses.Get("/:id/services", controllers.GetBusinessServices)
	businesses.Get("/:id/slots", controllers.GetAvailableSlots)

	// Protected routes
	businesses.Post("/", middleware.Protected(), controllers.CreateBusiness)
	businesses.Patch("/:id", middleware.Protected(), controllers.UpdateBusiness)
	businesses.Delete("/:id", middleware.Protected(), controllers.DeleteBusiness)
	businesses.Post("/:id/image", middleware.Protected(), controllers.UploadBusinessImage)
	businesses.Get("/:id/bookings", middleware.Protected(), controllers.GetBusinessBookings)
	businesses.Get("/:id/payments", middleware.Protected(), controllers.GetBusinessPayments)
	businesses.Post("/:id/services", middleware.Protected(), controllers.CreateService)

	// Ownership and employment listings
	businesses.Get("/me/owned", middleware.Protected(), controllers.GetUserBusinesses)
	businesses.Get("/me/employed", middleware.Protected(), controllers.GetEmployedBusinesses)

	// Employee management
	businesses.Get("/:id/employees", middleware.Protected(), controllers.GetEmployees)
	businesses.Post("/:id/employees", middleware.Protected(), controllers.AddEmployee)
	businesses.Patch("/:id/employees/:employeeId", middleware.Protected(), controllers.UpdateEmployeeRole)
	businesses.Delete("/:id/employees/:employeeId", middleware.Protected(), controllers.RemoveEmployee)

	// Schedules and leave
	businesses.Post("/:id/schedules", middleware.Protected(), controllers.SetEmployeeSchedule)
	businesses.Get("/:id/schedules/:employeeId", middleware.Protected(), controllers.GetEmployeeSchedule)
	businesses.Post("/:id/leaves", middleware.Protected(), controllers.RequestLeave)
	businesses.Get("/:id/leaves", middleware.Protected(), controllers.GetLeaves)
	businesses.Patch("/:id/leaves/:leaveId", middleware.Protected(), controllers.UpdateLeaveStatus)
}
