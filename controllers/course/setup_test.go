package courseController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseRoutes "lms/routers/courseRoutes"
	userRoutes "lms/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:      "test-secret",
		SaltRound:   4,
		FrontendURL: "http://localhost:5173",
		UploadDir:   t.TempDir(),
	}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	userRoutes.SetupUserRoutes(app)
	return app
}

// createUser inserts a user and returns it with a valid login token
func createUser(t *testing.T, name, email, role string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), 4)
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, Password: string(hash), Role: role}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

// createCourse inserts a course owned by the given instructor
func createCourse(t *testing.T, instructorID uint, name string, isPaid bool, price float64) models.Course {
	t.Helper()

	course := models.Course{
		Name:         name,
		Description:  "A course used by the test suite",
		InstructorID: instructorID,
		Duration:     10,
		Level:        models.LevelBeginner,
		IsPaid:       isPaid,
		Price:        price,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

// doRequest runs a request through the app and decodes the JSON envelope
func doRequest(t *testing.T, app *fiber.App, req *http.Request) (map[string]interface{}, int) {
	t.Helper()

	resp, err := app.Test(req)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result, resp.StatusCode
}

func jsonRequest(t *testing.T, method, path string, payload interface{}, token string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func countEnrollments(t *testing.T, courseID, userID uint) int64 {
	t.Helper()

	var total int64
	require.NoError(t, database.Database.Db.Model(&models.Enrollment{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&total).Error)
	return total
}
