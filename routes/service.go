package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/harmony-booking/controllers"
	"github.com/meinhoongagan/harmony-booking/middleware"
)

// SetupServiceRoutes configures all service related routes
func SetupServiceRoutes(app *fiber.App) {
	services := app.Group("/services")

	// Public routes
	services.Get("/", controllers.GetAllServices)
	services.Get("/categories", controllers.GetServiceCategories)
	services.Get("/:id", controllers.GetService)
	services.Get("/:id/reviews", controllers.GetServiceReviews)

	// Categories are platform-wide, managed by admins
	services.Post("/categories", middleware.Protected(), middleware.RequireRole("admin"), controllers.CreateServiceCategory)

	// Protected routes
	services.Patch("/:id", middleware.Protected(), controllers.UpdateService)
	services.Delete("/:id", middleware.Protected(), controllers.DeleteService)
	services.Post("/:id/image", middleware.Protected(), controllers.UploadServiceImage)
	services.Post("/:id/reviews", middleware.Protected(), controllers.AddServiceReview)
}
