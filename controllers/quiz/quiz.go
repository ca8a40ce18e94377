package controllers

import (
	"gkb/database"
	"gkb/middleware"
	"gkb/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// recordProgress upserts the caller's progress row for a question.
// The conflict clause rides on the (user_id, question_id) unique
// index, so concurrent reads and submissions for the same question
// collapse into one row instead of duplicating it.
func recordProgress(userID, bookID, unitID, subUnitID, questionID uint, selectedChoice *uint, isCorrect bool, status string) error {
	progress := models.UserProgress{
		UserID:         userID,
		QuestionID:     questionID,
		BookID:         bookID,
		UnitID:         unitID,
		SubUnitID:      subUnitID,
		SelectedChoice: selectedChoice,
		IsCorrect:      isCorrect,
		Status:         status,
	}

	return database.Database.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_choice", "is_correct", "status", "updated_at"}),
	}).Create(&progress).Error
}

// GetQuestion returns a question with its choices, answer hidden, and
// marks the question as read for the caller.
func GetQuestion(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	question := c.Locals("question").(*models.Question)
	subUnit := c.Locals("subUnit").(*models.SubUnit)
	unitID := c.Locals("unitID").(uint)
	bookID := c.Locals("bookID").(uint)

	var choices []models.Choice
	if err := database.Database.Db.Where("question_id = ?", question.ID).Find(&choices).Error; err != nil || len(choices) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No choices found for this question", nil)
	}

	var unit models.Unit
	if err := database.Database.Db.Where("id = ?", unitID).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found", nil)
	}

	var book models.Book
	if err := database.Database.Db.Where("id = ?", bookID).First(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found", nil)
	}

	// Viewing counts as progress
	if err := recordProgress(userId, bookID, unitID, subUnit.ID, question.ID, nil, false, models.StatusRead); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question fetched successfully!", fiber.Map{
		"id":      question.ID,
		"text_en": question.TextEn,
		"text_hi": question.TextHi,
		"book": fiber.Map{
			"id":       book.ID,
			"title_en": book.TitleEn,
			"title_hi": book.TitleHi,
		},
		"unit": fiber.Map{
			"id":       unit.ID,
			"title_en": unit.TitleEn,
			"title_hi": unit.TitleHi,
		},
		"subunit": fiber.Map{
			"id":       subUnit.ID,
			"title_en": subUnit.TitleEn,
			"title_hi": subUnit.TitleHi,
		},
		"choices": choices,
	})
}

// SubmitAnswer evaluates a submitted choice against the question's
// correct choice. The correct choice id is always returned, right or
// wrong; there is no attempt limiting.
func SubmitAnswer(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	question := c.Locals("question").(*models.Question)
	subUnit := c.Locals("subUnit").(*models.SubUnit)
	unitID := c.Locals("unitID").(uint)
	bookID := c.Locals("bookID").(uint)

	reqData, ok := c.Locals("validatedSubmit").(*struct {
		ChoiceID uint `json:"choice_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var choices []models.Choice
	if err := database.Database.Db.Where("question_id = ?", question.ID).Find(&choices).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch choices!", nil)
	}

	// The submitted choice must belong to this question's choice set
	var selected *models.Choice
	for i := range choices {
		if choices[i].ID == reqData.ChoiceID {
			selected = &choices[i]
			break
		}
	}
	if selected == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Choice not found", nil)
	}

	var correct *models.Choice
	for i := range choices {
		if choices[i].IsCorrect {
			correct = &choices[i]
			break
		}
	}
	if correct == nil {
		// Data-integrity fault: a question must carry a correct choice
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "No correct answer found for the question", nil)
	}

	isCorrect := selected.ID == correct.ID

	selectedID := selected.ID
	if err := recordProgress(userId, bookID, unitID, subUnit.ID, question.ID, &selectedID, isCorrect, models.StatusSubmitted); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	message := "Incorrect answer. Try again!"
	if isCorrect {
		message = "Correct answer!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer submitted!", fiber.Map{
		"message":           message,
		"correct":           isCorrect,
		"correct_option_id": correct.ID,
	})
}

// GetQuestionsBySubUnit lists a subunit's questions with their
// choices, answers hidden.
func GetQuestionsBySubUnit(c *fiber.Ctx) error {
	subUnit := c.Locals("subUnit").(*models.SubUnit)

	var questions []models.Question
	if err := database.Database.Db.
		Preload("Choices").
		Where("sub_unit_id = ? AND active = ?", subUnit.ID, true).
		Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No questions found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"questions": questions,
	})
}

// ReportQuestion files a complaint against a question and flags it
func ReportQuestion(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	question := c.Locals("question").(*models.Question)

	reqData, ok := c.Locals("validatedReport").(*struct {
		ExplanationEn string `json:"explanation_en"`
		ExplanationHi string `json:"explanation_hi"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	report := models.ReportedQuestion{
		ExplanationEn: reqData.ExplanationEn,
		ExplanationHi: reqData.ExplanationHi,
		QuestionID:    question.ID,
	}

	if err := database.Database.Db.Create(&report).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to report question!", nil)
	}

	database.Database.Db.Model(question).Update("reported", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question reported successfully!", report)
}
