package userValidator

import (
	"gkb/middleware"
	"gkb/models"

	"github.com/gofiber/fiber/v2"
)

func GetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Type   string `query:"type"`
			TypeID uint   `query:"type_id"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.TypeID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Type ID!", nil)
		}

		scope, ok := models.ParseProgressScope(reqData.Type, reqData.TypeID)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Type must be one of book, unit or subunit!", nil)
		}

		c.Locals("progressScope", &scope)
		return c.Next()
	}
}
