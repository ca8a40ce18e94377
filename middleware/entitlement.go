package middleware

import (
	"strconv"
	"strings"
	"time"

	"gkb/database"
	"gkb/models"

	"github.com/gofiber/fiber/v2"
)

// Entitlement targets: which route param identifies the content
const (
	AccessBySubUnit  = "subunit_id"
	AccessByQuestion = "question_id"
)

// HasFullSubscription reports whether the user holds a live full
// subscription. A row past its end date grants nothing even if the
// expiry sweep has not flipped it yet.
func HasFullSubscription(userID uint) bool {
	var count int64
	database.Database.Db.Model(&models.Subscription{}).
		Joins("JOIN subscription_types ON subscription_types.id = subscriptions.subscription_type_id").
		Where("subscriptions.user_id = ? AND subscriptions.active = ? AND subscription_types.code = ?", userID, true, models.FullSubscription).
		Where("subscriptions.end_date IS NULL OR subscriptions.end_date > ?", time.Now()).
		Count(&count)
	return count > 0
}

// HasBookSubscription reports whether the user holds a live
// subscription scoped to the given book.
func HasBookSubscription(userID uint, bookID uint) bool {
	var count int64
	database.Database.Db.Model(&models.Subscription{}).
		Where("user_id = ? AND book_id = ? AND active = ?", userID, bookID, true).
		Where("end_date IS NULL OR end_date > ?", time.Now()).
		Count(&count)
	return count > 0
}

// SubUnitAccess returns a middleware that decides whether the caller
// may view the subunit named by the route (directly, or via the
// question that belongs to it). Preview subunits are open to everyone;
// everything else needs a full subscription or one for the owning
// book. The resolved subunit and its book/unit ids are stored in the
// request context for the handlers behind it.
func SubUnitAccess(target string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		idStr := strings.TrimSpace(c.Params(target))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+target+"!", nil)
		}

		db := database.Database.Db

		var subUnit models.SubUnit
		switch target {
		case AccessByQuestion:
			var question models.Question
			if err := db.Where("id = ?", id).First(&question).Error; err != nil {
				return JsonResponse(c, fiber.StatusNotFound, false, "Question not found", nil)
			}
			if err := db.Where("id = ?", question.SubUnitID).First(&subUnit).Error; err != nil {
				return JsonResponse(c, fiber.StatusNotFound, false, "Subunit not found", nil)
			}
			c.Locals("question", &question)
		default:
			if err := db.Where("id = ?", id).First(&subUnit).Error; err != nil {
				return JsonResponse(c, fiber.StatusNotFound, false, "Subunit not found", nil)
			}
		}

		var unit models.Unit
		if err := db.Where("id = ?", subUnit.UnitID).First(&unit).Error; err != nil {
			return JsonResponse(c, fiber.StatusNotFound, false, "Unit not found", nil)
		}

		c.Locals("subUnit", &subUnit)
		c.Locals("unitID", unit.ID)
		c.Locals("bookID", unit.BookID)

		// Preview content is open to everyone
		if subUnit.IsPreview {
			return c.Next()
		}

		if HasFullSubscription(userID) {
			return c.Next()
		}

		if HasBookSubscription(userID, unit.BookID) {
			return c.Next()
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "Subscription required to access this content!", nil)
	}
}
