package userRoutes

import (
	controllers "gkb/controllers/user"
	"gkb/middleware"
	validators "gkb/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up the per-user progress routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/progress", middleware.JWTMiddleware, validators.GetProgress(), controllers.GetUserProgress)
}
