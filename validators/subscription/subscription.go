package subscriptionValidator

import (
	"gkb/middleware"
	"gkb/models"

	"github.com/gofiber/fiber/v2"
)

func CreateSubscription() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SubscriptionType string `json:"subscription_type"`
			BookID           *uint  `json:"book_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.SubscriptionType == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Subscription type is required!", nil)
		}

		// A single-book plan makes no sense without the book
		if reqData.SubscriptionType == models.BaseSubscription && (reqData.BookID == nil || *reqData.BookID == 0) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Book ID is required for a base subscription!", nil)
		}

		c.Locals("validatedSubscription", reqData)
		return c.Next()
	}
}
