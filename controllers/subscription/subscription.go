package controllers

import (
	"errors"
	"time"

	"gkb/config"
	"gkb/database"
	"gkb/middleware"
	"gkb/models"
	"gkb/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errActiveSubscriptionExists = errors.New("active subscription exists")

// liveSubscriptionQuery scopes a query to subscriptions that still
// grant access: active and not past their end date.
func liveSubscriptionQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Where("user_id = ? AND active = ?", userID, true).
		Where("end_date IS NULL OR end_date > ?", time.Now())
}

// CreateSubscription purchases a plan for the caller. A user holds at
// most one live subscription at a time.
func CreateSubscription(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
	}

	reqData, ok := c.Locals("validatedSubscription").(*struct {
		SubscriptionType string `json:"subscription_type"`
		BookID           *uint  `json:"book_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Resolve the plan by its code
	var subType models.SubscriptionType
	if err := db.Where("code = ?", reqData.SubscriptionType).First(&subType).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription type not found", nil)
	}

	var bookID *uint
	if subType.Code == models.BaseSubscription {
		var book models.Book
		if err := db.Where("id = ?", *reqData.BookID).First(&book).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found", nil)
		}
		bookID = reqData.BookID
	}

	// Check before paying so a declined duplicate isn't charged
	var existing models.Subscription
	if err := liveSubscriptionQuery(db, userId).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have an active subscription!", nil)
	}

	if err := utils.ProcessPayment(user.ID, user.Email, subType.Cost, subType.Code); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment failed!", nil)
	}

	startDate := time.Now()
	endDate := startDate.AddDate(0, 0, config.AppConfig.SubscriptionDays)

	subscription := models.Subscription{
		UserID:             userId,
		BookID:             bookID,
		SubscriptionTypeID: subType.ID,
		StartDate:          startDate,
		EndDate:            &endDate,
		Active:             true,
	}

	// The partial unique index on (user_id) WHERE active is what
	// actually closes the race: two concurrent purchases can both pass
	// the read check, but only one insert commits, the other surfaces
	// as gorm.ErrDuplicatedKey. A lapsed row the expiry sweep has not
	// flipped yet is deactivated first so it cannot trip the index.
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Subscription{}).
			Where("user_id = ? AND active = ? AND end_date IS NOT NULL AND end_date <= ?", userId, true, time.Now()).
			Update("active", false).Error; err != nil {
			return err
		}

		var live models.Subscription
		if err := liveSubscriptionQuery(tx, userId).First(&live).Error; err == nil {
			return errActiveSubscriptionExists
		}
		return tx.Create(&subscription).Error
	})
	if errors.Is(err, errActiveSubscriptionExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have an active subscription!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subscription!", nil)
	}

	// Preload plan and book for the response
	db.Preload("SubscriptionType").Preload("Book").First(&subscription, subscription.ID)

	utils.SendSubscriptionEmail(user.Email, user.FirstName, subscription.SubscriptionType.Name, subscription.EndDate)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription created successfully.", subscription)
}

// GetAllSubscriptionTypes lists the purchasable plans
func GetAllSubscriptionTypes(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var subTypes []models.SubscriptionType
	if err := database.Database.Db.Find(&subTypes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subscription types!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription types fetched successfully!", fiber.Map{
		"subscription_types": subTypes,
	})
}

// GetActiveSubscription returns the caller's live subscription
func GetActiveSubscription(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var subscription models.Subscription
	if err := liveSubscriptionQuery(database.Database.Db, userId).
		Preload("SubscriptionType").
		Preload("Book").
		First(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active subscription found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Active subscription fetched successfully!", subscription)
}
