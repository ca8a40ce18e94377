package bookValidator

import (
	"strconv"
	"strings"

	"gkb/middleware"

	"github.com/gofiber/fiber/v2"
)

func GetBookDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bookIDStr := strings.TrimSpace(c.Params("book_id"))
		if bookIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Book ID is required!", nil)
		}

		// Validate BookID is a valid integer
		bookID, err := strconv.Atoi(bookIDStr)
		if err != nil || bookID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Book ID!", nil)
		}

		c.Locals("bookID", bookID)
		return c.Next()
	}
}

func GetUnits() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bookIDStr := strings.TrimSpace(c.Params("book_id"))
		bookID, err := strconv.Atoi(bookIDStr)
		if err != nil || bookID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Book ID!", nil)
		}

		c.Locals("bookID", bookID)
		return c.Next()
	}
}

func GetSubUnits() fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitIDStr := strings.TrimSpace(c.Params("unit_id"))
		unitID, err := strconv.Atoi(unitIDStr)
		if err != nil || unitID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Unit ID!", nil)
		}

		c.Locals("unitID", unitID)
		return c.Next()
	}
}
