package bookRoutes

import (
	controllers "gkb/controllers/book"
	"gkb/middleware"
	validators "gkb/validators/book"

	"github.com/gofiber/fiber/v2"
)

// SetupBookRoutes sets up the content catalog routes
func SetupBookRoutes(app *fiber.App) {
	bookGroup := app.Group("/books")

	bookGroup.Get("/", middleware.JWTMiddleware, controllers.GetAllBooks)
	bookGroup.Get("/book/:book_id", middleware.JWTMiddleware, validators.GetBookDetail(), controllers.GetBookDetails)
	bookGroup.Get("/book/:book_id/units", middleware.JWTMiddleware, validators.GetUnits(), controllers.GetUnits)
	bookGroup.Get("/book/unit/:unit_id/subunits", middleware.JWTMiddleware, validators.GetSubUnits(), controllers.GetSubUnits)
}
