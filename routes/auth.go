package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/harmony-booking/controllers"
	"github.com/meinhoongagan/harmony-booking/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Post("/forgot-password", controllers.ForgotPassword)
	auth.Post("/reset-password", controllers.ResetPassword)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetCurrentUser)
	auth.Patch("/me", middleware.Protected(), controllers.UpdateProfile)
	auth.Post("/me/picture", middleware.Protected(), controllers.UploadProfilePicture)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Post("/change-password", middleware.Protected(), controllers.ChangePassword)
	auth.Get("/user/:id", middleware.Protected(), controllers.GetUserByID)
}
