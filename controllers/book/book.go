package controllers

import (
	"gkb/database"
	"gkb/middleware"
	"gkb/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// markViewable flags every subunit of the given units as viewable.
// The preview flag doubles as the "caller may open this" marker on
// responses, so subscribed callers see all content unlocked.
func markViewable(units []models.Unit) {
	for i := range units {
		for j := range units[i].SubUnits {
			units[i].SubUnits[j].IsPreview = true
		}
	}
}

// GetAllBooks returns every book with its units and subunits, with
// subunits unlocked according to the caller's subscriptions.
func GetAllBooks(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var books []models.Book
	if err := database.Database.Db.
		Preload("Units", func(db *gorm.DB) *gorm.DB { return db.Order("units.unit_number asc") }).
		Preload("Units.SubUnits", func(db *gorm.DB) *gorm.DB { return db.Order("sub_units.subunit_number asc") }).
		Find(&books).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch books!", nil)
	}

	if len(books) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No books found", nil)
	}

	fullSubscription := middleware.HasFullSubscription(userId)
	for i := range books {
		if fullSubscription || middleware.HasBookSubscription(userId, books[i].ID) {
			markViewable(books[i].Units)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Books fetched successfully!", fiber.Map{
		"books": books,
	})
}

// GetBookDetails returns one book with its units and subunits
func GetBookDetails(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	bookID := c.Locals("bookID").(int)

	var book models.Book
	if err := database.Database.Db.
		Preload("Units", func(db *gorm.DB) *gorm.DB { return db.Order("units.unit_number asc") }).
		Preload("Units.SubUnits", func(db *gorm.DB) *gorm.DB { return db.Order("sub_units.subunit_number asc") }).
		Where("id = ?", bookID).First(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found", nil)
	}

	if middleware.HasFullSubscription(userId) || middleware.HasBookSubscription(userId, book.ID) {
		markViewable(book.Units)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Book fetched successfully!", book)
}

// GetUnits returns all units of a book
func GetUnits(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	bookID := c.Locals("bookID").(int)

	var units []models.Unit
	if err := database.Database.Db.
		Preload("SubUnits", func(db *gorm.DB) *gorm.DB { return db.Order("sub_units.subunit_number asc") }).
		Where("book_id = ?", bookID).
		Order("unit_number asc").
		Find(&units).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch units!", nil)
	}

	if len(units) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No units found for this book", nil)
	}

	if middleware.HasFullSubscription(userId) || middleware.HasBookSubscription(userId, uint(bookID)) {
		markViewable(units)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Units fetched successfully!", fiber.Map{
		"units": units,
	})
}

// GetSubUnits returns all subunits of a unit
func GetSubUnits(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitID := c.Locals("unitID").(int)

	var unit models.Unit
	if err := database.Database.Db.Where("id = ?", unitID).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found", nil)
	}

	var subUnits []models.SubUnit
	if err := database.Database.Db.
		Where("unit_id = ?", unitID).
		Order("subunit_number asc").
		Find(&subUnits).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subunits!", nil)
	}

	if len(subUnits) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No subunits found for this unit", nil)
	}

	if middleware.HasFullSubscription(userId) || middleware.HasBookSubscription(userId, unit.BookID) {
		for i := range subUnits {
			subUnits[i].IsPreview = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subunits fetched successfully!", fiber.Map{
		"subunits": subUnits,
	})
}
