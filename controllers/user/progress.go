package controllers

import (
	"math"

	"gkb/database"
	"gkb/middleware"
	"gkb/models"

	"github.com/gofiber/fiber/v2"
)

const recentDetailsLimit = 10

// countScopeQuestions counts every question under the scope entity,
// independent of what the user has attempted.
func countScopeQuestions(scope models.ProgressScope) int64 {
	db := database.Database.Db
	var total int64

	switch scope.Kind {
	case models.ScopeBook:
		db.Model(&models.Question{}).
			Joins("JOIN sub_units ON sub_units.id = questions.sub_unit_id").
			Joins("JOIN units ON units.id = sub_units.unit_id").
			Where("units.book_id = ?", scope.ID).
			Count(&total)
	case models.ScopeUnit:
		db.Model(&models.Question{}).
			Joins("JOIN sub_units ON sub_units.id = questions.sub_unit_id").
			Where("sub_units.unit_id = ?", scope.ID).
			Count(&total)
	case models.ScopeSubUnit:
		db.Model(&models.Question{}).
			Where("questions.sub_unit_id = ?", scope.ID).
			Count(&total)
	}

	return total
}

// resolveScope checks the scope entity exists. The message doubles as
// the 404 detail.
func resolveScope(scope models.ProgressScope) (bool, string) {
	db := database.Database.Db
	var count int64

	switch scope.Kind {
	case models.ScopeBook:
		db.Model(&models.Book{}).Where("id = ?", scope.ID).Count(&count)
		return count > 0, "Book not found"
	case models.ScopeUnit:
		db.Model(&models.Unit{}).Where("id = ?", scope.ID).Count(&count)
		return count > 0, "Unit not found"
	default:
		db.Model(&models.SubUnit{}).Where("id = ?", scope.ID).Count(&count)
		return count > 0, "Subunit not found"
	}
}

// GetUserProgress aggregates the caller's quiz activity over a book,
// unit or subunit scope.
func GetUserProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	scope, ok := c.Locals("progressScope").(*models.ProgressScope)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	found, notFoundMsg := resolveScope(*scope)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, notFoundMsg, nil)
	}

	db := database.Database.Db.Model(&models.UserProgress{}).Where("user_id = ?", userId)
	switch scope.Kind {
	case models.ScopeBook:
		db = db.Where("book_id = ?", scope.ID)
	case models.ScopeUnit:
		db = db.Where("unit_id = ?", scope.ID)
	case models.ScopeSubUnit:
		db = db.Where("sub_unit_id = ?", scope.ID)
	}

	var rows []models.UserProgress
	if err := db.Order("updated_at desc").Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	totalAttempted := 0
	totalCorrect := 0
	for _, row := range rows {
		if row.Status == models.StatusSubmitted {
			totalAttempted++
		}
		if row.IsCorrect {
			totalCorrect++
		}
	}

	accuracy := 0.0
	if totalAttempted > 0 {
		accuracy = math.Round(float64(totalCorrect)/float64(totalAttempted)*100*100) / 100
	}

	type recentDetail struct {
		UnitID     uint   `json:"unit_id"`
		SubUnitID  uint   `json:"sub_unit_id"`
		QuestionID uint   `json:"question_id"`
		Status     string `json:"status"`
	}

	recent := make([]recentDetail, 0, recentDetailsLimit)
	for _, row := range rows {
		if len(recent) == recentDetailsLimit {
			break
		}
		recent = append(recent, recentDetail{
			UnitID:     row.UnitID,
			SubUnitID:  row.SubUnitID,
			QuestionID: row.QuestionID,
			Status:     row.Status,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"total_questions":           countScopeQuestions(*scope),
		"total_questions_attempted": totalAttempted,
		"total_questions_correct":   totalCorrect,
		"accuracy":                  accuracy,
		"recent_question_details":   recent,
	})
}
