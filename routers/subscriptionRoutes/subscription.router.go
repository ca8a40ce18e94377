package subscriptionRoutes

import (
	controllers "gkb/controllers/subscription"
	"gkb/middleware"
	validators "gkb/validators/subscription"

	"github.com/gofiber/fiber/v2"
)

// SetupSubscriptionRoutes sets up the subscription routes
func SetupSubscriptionRoutes(app *fiber.App) {
	subscriptionGroup := app.Group("/subscription")

	subscriptionGroup.Post("/create", middleware.JWTMiddleware, validators.CreateSubscription(), controllers.CreateSubscription)
	subscriptionGroup.Get("/all", middleware.JWTMiddleware, controllers.GetAllSubscriptionTypes)

	// The caller's own subscription lives under /user
	userGroup := app.Group("/user")
	userGroup.Get("/active-subscription", middleware.JWTMiddleware, controllers.GetActiveSubscription)
}
