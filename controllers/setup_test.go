package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skillquest/backend/config"
	"github.com/skillquest/backend/models"
	"github.com/skillquest/backend/routes"
	"github.com/skillquest/backend/utils"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.LessonProgress{},
		&models.UserBadge{},
		&models.Payment{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAttempt{},
	)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:     "testsecret",
		WebhookSecret: "hook-secret",
		ServerPort:    "8080",
	}

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg)
	return app, db, cfg
}

// createUser inserts a user with the given role and returns it with a
// valid token.
func createUser(t *testing.T, db *gorm.DB, cfg *config.Config, name, email, role string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Level:        1,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateJWTToken(user.ID, cfg)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func createCourse(t *testing.T, db *gorm.DB, title string, price float64, status string) models.Course {
	t.Helper()

	course := models.Course{
		Title:  title,
		Price:  price,
		Status: status,
		Level:  "beginner",
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createLesson(t *testing.T, db *gorm.DB, courseID uint, title string, order int) models.Lesson {
	t.Helper()

	lesson := models.Lesson{
		CourseID:   courseID,
		Title:      title,
		OrderIndex: order,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}
