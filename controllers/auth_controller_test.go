package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/skillquest/backend/models"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
		"name":     "New User",
		"email":    "newuser@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.NotEmpty(t, result["token"])
	user := result["user"].(map[string]interface{})
	assert.Equal(t, "newuser@example.com", user["email"])
	assert.Equal(t, models.RoleStudent, user["role"])
}

func TestRegisterValidation(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Bad Email",
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// short password
	resp = doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Short",
		"email":    "short@example.com",
		"password": "abc",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _, _ := newTestApp(t)

	payload := map[string]string{
		"name":     "First",
		"email":    "dup@example.com",
		"password": "password123",
	}
	resp := doRequest(t, app, "POST", "/api/auth/register", "", payload)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/auth/register", "", payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app, _, _ := newTestApp(t)

	doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Login User",
		"email":    "login@example.com",
		"password": "password123",
	})

	resp := doRequest(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	assert.NotEmpty(t, result["token"])

	resp = doRequest(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    "missing@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMe(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user, token := createUser(t, db, cfg, "Profile User", "me@example.com", models.RoleStudent)

	resp := doRequest(t, app, "GET", "/api/auth/me", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, user.Email, result["email"])
	assert.Equal(t, float64(1), result["level"])
	assert.Equal(t, float64(0), result["xp"])

	resp = doRequest(t, app, "GET", "/api/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
