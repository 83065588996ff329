package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDb(t *testing.T) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	database.Database = database.DbInstance{Db: db}
}

func decodeBody(t *testing.T, body io.Reader, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(out))
}

func setupTestApp() *fiber.App {
	app := fiber.New()

	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.JSON(fiber.Map{"email": user.Email, "password": user.Password})
	})

	app.Get("/optional", OptionalJWTMiddleware, func(c *fiber.Ctx) error {
		if user, ok := c.Locals("user").(*models.User); ok {
			return c.JSON(fiber.Map{"email": user.Email})
		}
		return c.JSON(fiber.Map{"email": ""})
	})

	return app
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	setupTestDb(t)
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareMalformedHeader(t *testing.T) {
	setupTestDb(t)
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareInvalidToken(t *testing.T) {
	setupTestDb(t)
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareResolvesUser(t *testing.T) {
	setupTestDb(t)
	app := setupTestApp()

	user := models.User{Name: "Alice", Email: "alice@example.com", Password: "hash", Role: models.RoleStudent}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]string
	decodeBody(t, resp.Body, &result)
	assert.Equal(t, "alice@example.com", result["email"])
	// Password hash never reaches handlers
	assert.Empty(t, result["password"])
}

func TestJWTMiddlewareDeletedUser(t *testing.T) {
	setupTestDb(t)
	app := setupTestApp()

	user := models.User{Name: "Gone", Email: "gone@example.com", Password: "hash", IsDeleted: true}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalJWTMiddleware(t *testing.T) {
	setupTestDb(t)
	app := setupTestApp()

	// Anonymous request proceeds
	req := httptest.NewRequest("GET", "/optional", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Invalid token also proceeds, without an identity
	req = httptest.NewRequest("GET", "/optional", nil)
	req.Header.Set("Authorization", "Bearer junk")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]string
	decodeBody(t, resp.Body, &result)
	assert.Empty(t, result["email"])

	// Valid token attaches the user
	user := models.User{Name: "Bob", Email: "bob@example.com", Password: "hash"}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	req = httptest.NewRequest("GET", "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	assert.NoError(t, err)

	decodeBody(t, resp.Body, &result)
	assert.Equal(t, "bob@example.com", result["email"])
}

func TestEnrollmentTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	token, err := GenerateEnrollmentToken(42, 7)
	require.NoError(t, err)

	courseID, userID, err := ParseEnrollmentToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), courseID)
	assert.Equal(t, uint(7), userID)

	_, _, err = ParseEnrollmentToken("garbage")
	assert.Error(t, err)
}
