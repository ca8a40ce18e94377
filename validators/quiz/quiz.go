package quizValidator

import (
	"strings"

	"gkb/middleware"

	"github.com/gofiber/fiber/v2"
)

func SubmitAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ChoiceID uint `json:"choice_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.ChoiceID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Choice ID is required!", nil)
		}

		c.Locals("validatedSubmit", reqData)
		return c.Next()
	}
}

func ReportQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ExplanationEn string `json:"explanation_en"`
			ExplanationHi string `json:"explanation_hi"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.ExplanationEn) == "" && strings.TrimSpace(reqData.ExplanationHi) == "" {
			errors["explanation"] = "An explanation is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReport", reqData)
		return c.Next()
	}
}
