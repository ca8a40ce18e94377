package controllers_test

import (
	"bytes"
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
	subscriptionRoutes "gkb/routers/subscriptionRoutes"

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
	subscriptionRoutes.SetupSubscriptionRoutes(app)
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

func createSubscriptionTypes(t *testing.T) (models.SubscriptionType, models.SubscriptionType) {
	t.Helper()
	db := database.Database.Db
	full := models.SubscriptionType{Name: "Full Subscription", Code: models.FullSubscription, Cost: 499}
	base := models.SubscriptionType{Name: "Base Subscription", Code: models.BaseSubscription, Cost: 199}
	require.NoError(t, db.Create(&full).Error)
	require.NoError(t, db.Create(&base).Error)
	return full, base
}

func createBook(t *testing.T) models.Book {
	t.Helper()
	book := models.Book{TitleEn: "Indian Geography"}
	require.NoError(t, database.Database.Db.Create(&book).Error)
	return book
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
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

func TestCreateFullSubscription(t *testing.T) {
	app := setupTestApp(t)
	createSubscriptionTypes(t)
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, envelope := doRequest(t, app, http.MethodPost, "/subscription/create", token, fiber.Map{
		"subscription_type": models.FullSubscription,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Subscription created successfully.", envelope["message"])

	var sub models.Subscription
	require.NoError(t, database.Database.Db.Preload("SubscriptionType").Where("user_id = ?", user.ID).First(&sub).Error)
	assert.True(t, sub.Active)
	assert.Nil(t, sub.BookID)
	assert.Equal(t, models.FullSubscription, sub.SubscriptionType.Code)
	require.NotNil(t, sub.EndDate)
	expectedEnd := time.Now().AddDate(0, 0, config.AppConfig.SubscriptionDays)
	assert.WithinDuration(t, expectedEnd, *sub.EndDate, time.Minute)
}

func TestCreateBaseSubscription(t *testing.T) {
	app := setupTestApp(t)
	createSubscriptionTypes(t)
	book := createBook(t)
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, _ := doRequest(t, app, http.MethodPost, "/subscription/create", token, fiber.Map{
		"subscription_type": models.BaseSubscription,
		"book_id":           book.ID,
	})
	require.Equal(t, http.StatusOK, status)

	var sub models.Subscription
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&sub).Error)
	require.NotNil(t, sub.BookID)
	assert.Equal(t, book.ID, *sub.BookID)
}

func TestCreateBaseSubscriptionWithoutBook(t *testing.T) {
	app := setupTestApp(t)
	createSubscriptionTypes(t)
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, _ := doRequest(t, app, http.MethodPost, "/subscription/create", token, fiber.Map{
		"subscription_type": models.BaseSubscription,
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateBaseSubscriptionUnknownBook(t *testing.T) {
	app := setupTestApp(t)
	createSubscriptionTypes(t)
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, _ := doRequest(t, app, http.MethodPost, "/subscription/create", token, fiber.Map{
		"subscription_type": models.BaseSubscription,
		"book_id":           9999,
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateSubscriptionUnknownType(t *testing.T) {
	app := setupTestApp(t)
	createSubscriptionTypes(t)
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, _ := doRequest(t, app, http.MethodPost, "/subscription/create", token, fiber.Map{
		"subscription_type": "platinum_subscription",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateDuplicateSubscription(t *testing.T) {
	app := setupTestApp(t)
	createSubscriptionTypes(t)
	book := createBook(t)
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, _ := doRequest(t, app, http.MethodPost, "/subscription/create", token, fiber.Map{
		"subscription_type": models.FullSubscription,
	})
	require.Equal(t, http.StatusOK, status)

	// Any second live subscription is rejected, full or per-book
	status, _ = doRequest(t, app, http.MethodPost, "/subscription/create", token, fiber.Map{
		"subscription_type": models.BaseSubscription,
		"book_id":           book.ID,
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestCreateSubscriptionAfterExpiry(t *testing.T) {
	app := setupTestApp(t)
	createSubscriptionTypes(t)
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, _ := doRequest(t, app, http.MethodPost, "/subscription/create", token, fiber.Map{
		"subscription_type": models.FullSubscription,
	})
	require.Equal(t, http.StatusOK, status)

	// A lapsed subscription no longer blocks a new purchase even if
	// the expiry sweep has not deactivated it yet
	pastEnd := time.Now().AddDate(0, 0, -1)
	require.NoError(t, database.Database.Db.Model(&models.Subscription{}).
		Where("user_id = ?", user.ID).Update("end_date", pastEnd).Error)

	status, _ = doRequest(t, app, http.MethodPost, "/subscription/create", token, fiber.Map{
		"subscription_type": models.FullSubscription,
	})
	assert.Equal(t, http.StatusOK, status)
}

func TestActiveSubscriptionUniqueIndex(t *testing.T) {
	setupTestApp(t)
	full, _ := createSubscriptionTypes(t)
	user := createUser(t, "asha@example.com")
	db := database.Database.Db

	end := time.Now().AddDate(0, 0, 30)
	first := models.Subscription{
		UserID:             user.ID,
		SubscriptionTypeID: full.ID,
		StartDate:          time.Now(),
		EndDate:            &end,
		Active:             true,
	}
	require.NoError(t, db.Create(&first).Error)

	// The partial unique index rejects a second active row even when
	// the insert bypasses the handler's read check, which is what a
	// concurrent purchase racing past the check looks like
	second := models.Subscription{
		UserID:             user.ID,
		SubscriptionTypeID: full.ID,
		StartDate:          time.Now(),
		EndDate:            &end,
		Active:             true,
	}
	err := db.Create(&second).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Deactivated history rows don't collide
	require.NoError(t, db.Model(&first).Update("active", false).Error)
	third := models.Subscription{
		UserID:             user.ID,
		SubscriptionTypeID: full.ID,
		StartDate:          time.Now(),
		EndDate:            &end,
		Active:             true,
	}
	require.NoError(t, db.Create(&third).Error)
}

func TestGetActiveSubscription(t *testing.T) {
	app := setupTestApp(t)
	createSubscriptionTypes(t)
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	// Nothing yet
	status, _ := doRequest(t, app, http.MethodGet, "/user/active-subscription", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, app, http.MethodPost, "/subscription/create", token, fiber.Map{
		"subscription_type": models.FullSubscription,
	})
	require.Equal(t, http.StatusOK, status)

	status, envelope := doRequest(t, app, http.MethodGet, "/user/active-subscription", token, nil)
	require.Equal(t, http.StatusOK, status)

	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok)
	subType, ok := data["subscription_type"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, models.FullSubscription, subType["code"])
}

func TestGetAllSubscriptionTypes(t *testing.T) {
	app := setupTestApp(t)
	createSubscriptionTypes(t)
	user := createUser(t, "asha@example.com")
	token := authToken(t, user)

	status, envelope := doRequest(t, app, http.MethodGet, "/subscription/all", token, nil)
	require.Equal(t, http.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	subTypes := data["subscription_types"].([]interface{})
	assert.Len(t, subTypes, 2)
}

func TestSubscriptionRoutesRequireAuth(t *testing.T) {
	app := setupTestApp(t)

	status, _ := doRequest(t, app, http.MethodGet, "/subscription/all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doRequest(t, app, http.MethodPost, "/subscription/create", "", fiber.Map{
		"subscription_type": models.FullSubscription,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}
