package controllers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gkb/config"
	"gkb/database"
	"gkb/middleware"
	"gkb/models"
	bookRoutes "gkb/routers/bookRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	bookRoutes.SetupBookRoutes(app)
	return app
}

func createUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{FirstName: "Asha", LastName: "Rao", Email: email, Verified: true, Active: true}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.FirstName, user.Email)
	require.NoError(t, err)
	return token
}

// createBook builds a book with one unit and two subunits, the second
// of which is a free preview.
func createBook(t *testing.T, title string) models.Book {
	t.Helper()
	book := models.Book{
		TitleEn: title,
		Units: []models.Unit{
			{
				TitleEn:    title + " Unit 1",
				UnitNumber: 1,
				SubUnits: []models.SubUnit{
					{TitleEn: "Locked", ContentEn: "Paid content", SubunitNumber: 1},
					{TitleEn: "Preview", ContentEn: "Free content", SubunitNumber: 2, IsPreview: true},
				},
			},
		},
	}
	require.NoError(t, database.Database.Db.Create(&book).Error)
	return book
}

func giveSubscription(t *testing.T, userID uint, code string, bookID *uint) {
	t.Helper()
	db := database.Database.Db

	var subType models.SubscriptionType
	if err := db.Where("code = ?", code).First(&subType).Error; err != nil {
		subType = models.SubscriptionType{Name: code, Code: code}
		require.NoError(t, db.Create(&subType).Error)
	}

	end := time.Now().AddDate(0, 0, 30)
	sub := models.Subscription{
		UserID:             userID,
		BookID:             bookID,
		SubscriptionTypeID: subType.ID,
		StartDate:          time.Now(),
		EndDate:            &end,
		Active:             true,
	}
	require.NoError(t, db.Create(&sub).Error)
}

func doRequest(t *testing.T, app *fiber.App, path, token string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

// previewFlags collects is_preview per subunit title from a serialized unit list
func previewFlags(t *testing.T, units []interface{}) map[string]bool {
	t.Helper()
	flags := make(map[string]bool)
	for _, u := range units {
		unit := u.(map[string]interface{})
		subUnits, _ := unit["subunits"].([]interface{})
		for _, s := range subUnits {
			subUnit := s.(map[string]interface{})
			flags[subUnit["title_en"].(string)] = subUnit["is_preview"].(bool)
		}
	}
	return flags
}

func TestGetAllBooksWithoutSubscription(t *testing.T) {
	app := setupTestApp(t)
	createBook(t, "Indian Geography")
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, envelope := doRequest(t, app, "/books/", token)
	require.Equal(t, http.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	books := data["books"].([]interface{})
	require.Len(t, books, 1)

	flags := previewFlags(t, books[0].(map[string]interface{})["units"].([]interface{}))
	assert.False(t, flags["Locked"])
	assert.True(t, flags["Preview"])
}

func TestGetAllBooksWithFullSubscription(t *testing.T) {
	app := setupTestApp(t)
	createBook(t, "Indian Geography")
	createBook(t, "Indian History")
	user := createUser(t, "asha@example.com")
	giveSubscription(t, user.ID, models.FullSubscription, nil)
	token := authToken(t, user)

	status, envelope := doRequest(t, app, "/books/", token)
	require.Equal(t, http.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	books := data["books"].([]interface{})
	require.Len(t, books, 2)

	// Full subscription unlocks every subunit of every book
	for _, b := range books {
		flags := previewFlags(t, b.(map[string]interface{})["units"].([]interface{}))
		assert.True(t, flags["Locked"])
		assert.True(t, flags["Preview"])
	}
}

func TestGetAllBooksWithBaseSubscription(t *testing.T) {
	app := setupTestApp(t)
	bookA := createBook(t, "Indian Geography")
	createBook(t, "Indian History")
	user := createUser(t, "asha@example.com")
	giveSubscription(t, user.ID, models.BaseSubscription, &bookA.ID)
	token := authToken(t, user)

	status, envelope := doRequest(t, app, "/books/", token)
	require.Equal(t, http.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	books := data["books"].([]interface{})
	require.Len(t, books, 2)

	for _, b := range books {
		book := b.(map[string]interface{})
		flags := previewFlags(t, book["units"].([]interface{}))
		if book["title_en"] == "Indian Geography" {
			assert.True(t, flags["Locked"], "subscribed book should be unlocked")
		} else {
			assert.False(t, flags["Locked"], "other books stay locked")
		}
		assert.True(t, flags["Preview"])
	}
}

func TestGetAllBooksEmptyCatalog(t *testing.T) {
	app := setupTestApp(t)
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, _ := doRequest(t, app, "/books/", token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetBookDetails(t *testing.T) {
	app := setupTestApp(t)
	book := createBook(t, "Indian Geography")
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, envelope := doRequest(t, app, fmt.Sprintf("/books/book/%d", book.ID), token)
	require.Equal(t, http.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "Indian Geography", data["title_en"])
	units := data["units"].([]interface{})
	require.Len(t, units, 1)

	status, _ = doRequest(t, app, "/books/book/9999", token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetUnits(t *testing.T) {
	app := setupTestApp(t)
	book := createBook(t, "Indian Geography")
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, envelope := doRequest(t, app, fmt.Sprintf("/books/book/%d/units", book.ID), token)
	require.Equal(t, http.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	units := data["units"].([]interface{})
	require.Len(t, units, 1)

	// A book id with no units reads as not found
	status, _ = doRequest(t, app, "/books/book/9999/units", token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetSubUnits(t *testing.T) {
	app := setupTestApp(t)
	book := createBook(t, "Indian Geography")
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	unitID := book.Units[0].ID
	status, envelope := doRequest(t, app, fmt.Sprintf("/books/book/unit/%d/subunits", unitID), token)
	require.Equal(t, http.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	subUnits := data["subunits"].([]interface{})
	require.Len(t, subUnits, 2)
	first := subUnits[0].(map[string]interface{})
	assert.Equal(t, "Locked", first["title_en"])

	status, _ = doRequest(t, app, "/books/book/unit/9999/subunits", token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBookRoutesRequireAuth(t *testing.T) {
	app := setupTestApp(t)
	createBook(t, "Indian Geography")

	status, _ := doRequest(t, app, "/books/", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}
