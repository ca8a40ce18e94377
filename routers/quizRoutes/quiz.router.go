package quizRoutes

import (
	controllers "gkb/controllers/quiz"
	"gkb/middleware"
	validators "gkb/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up the quiz routes. Question and subunit
// routes sit behind the subscription entitlement check.
func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/quiz")

	quizGroup.Get("/question/:question_id", middleware.JWTMiddleware, middleware.SubUnitAccess(middleware.AccessByQuestion), controllers.GetQuestion)
	quizGroup.Post("/question/:question_id/submit", middleware.JWTMiddleware, validators.SubmitAnswer(), middleware.SubUnitAccess(middleware.AccessByQuestion), controllers.SubmitAnswer)
	quizGroup.Get("/subunit/:subunit_id/questions", middleware.JWTMiddleware, middleware.SubUnitAccess(middleware.AccessBySubUnit), controllers.GetQuestionsBySubUnit)

	// Only content the caller can see can be reported
	quizGroup.Post("/question/:question_id/report", middleware.JWTMiddleware, validators.ReportQuestion(), middleware.SubUnitAccess(middleware.AccessByQuestion), controllers.ReportQuestion)
}
