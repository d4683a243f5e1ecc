package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/skillquest/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourseRequiresStaffRole(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, studentToken := createUser(t, db, cfg, "Student", "student@example.com", models.RoleStudent)
	_, instructorToken := createUser(t, db, cfg, "Teacher", "teacher@example.com", models.RoleInstructor)

	payload := map[string]interface{}{
		"title": "Go Basics",
		"level": "beginner",
		"price": 0,
	}

	resp := doRequest(t, app, "POST", "/api/courses", studentToken, payload)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/courses", instructorToken, payload)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	course := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "Go Basics", course["title"])
	assert.Equal(t, models.CourseStatusDraft, course["status"])
}

func TestListCoursesShowsPublishedOnly(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Student", "catalog@example.com", models.RoleStudent)
	createCourse(t, db, "Published", 0, models.CourseStatusPublished)
	createCourse(t, db, "Hidden Draft", 0, models.CourseStatusDraft)

	resp := doRequest(t, app, "GET", "/api/courses", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	courses := decodeBody(t, resp)["data"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Published", courses[0].(map[string]interface{})["title"])
}

func TestListCoursesFilterComposition(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Student", "filter@example.com", models.RoleStudent)

	design := models.Course{Title: "Design 101", Category: "Design", Level: "beginner", Status: models.CourseStatusPublished}
	require.NoError(t, db.Create(&design).Error)
	designAdv := models.Course{Title: "Design Advanced", Category: "Design", Level: "advanced", Status: models.CourseStatusPublished}
	require.NoError(t, db.Create(&designAdv).Error)
	code := models.Course{Title: "Coding 101", Category: "Programming", Level: "beginner", Status: models.CourseStatusPublished}
	require.NoError(t, db.Create(&code).Error)

	resp := doRequest(t, app, "GET", "/api/courses?category=Design&level=beginner", token, nil)
	courses := decodeBody(t, resp)["data"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Design 101", courses[0].(map[string]interface{})["title"])

	// no criteria returns everything published
	resp = doRequest(t, app, "GET", "/api/courses", token, nil)
	assert.Len(t, decodeBody(t, resp)["data"].([]interface{}), 3)

	// empty result is a valid outcome
	resp = doRequest(t, app, "GET", "/api/courses?category=Music", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["data"].([]interface{}), 0)
}

func TestGetCourseHidesVideosWithoutAccess(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Student", "videos@example.com", models.RoleStudent)
	course := createCourse(t, db, "Paid Course", 30, models.CourseStatusPublished)
	lesson := models.Lesson{CourseID: course.ID, Title: "Intro", VideoURL: "https://cdn/video.mp4", OrderIndex: 1}
	require.NoError(t, db.Create(&lesson).Error)

	resp := doRequest(t, app, "GET", fmt.Sprintf("/api/courses/%d", course.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, false, result["access"])
	lessons := result["course"].(map[string]interface{})["lessons"].([]interface{})
	require.Len(t, lessons, 1)
	assert.Empty(t, lessons[0].(map[string]interface{})["video_url"])
}

func TestGetCourseNotFound(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Student", "nf@example.com", models.RoleStudent)

	resp := doRequest(t, app, "GET", "/api/courses/9999", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLessonManagement(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Teacher", "lessons@example.com", models.RoleInstructor)
	course := createCourse(t, db, "Course", 0, models.CourseStatusPublished)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/lessons", course.ID), token,
		map[string]interface{}{"title": "Lesson 1", "video_url": "https://cdn/v1.mp4", "duration": 12, "order_index": 1})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	lesson := decodeBody(t, resp)["data"].(map[string]interface{})
	lessonID := uint(lesson["ID"].(float64))

	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/courses/%d/lessons/%d", course.ID, lessonID), token,
		map[string]interface{}{"title": "Lesson 1 (edited)", "duration": 15, "order_index": 1})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/api/courses/%d/lessons/%d", course.ID, lessonID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Lesson{}).Where("course_id = ?", course.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteCourseWithEnrollmentsConflicts(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, admin := createUser(t, db, cfg, "Admin", "admin@example.com", models.RoleAdmin)
	_, student := createUser(t, db, cfg, "Student", "enrolled@example.com", models.RoleStudent)
	course := createCourse(t, db, "Course", 0, models.CourseStatusPublished)

	doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), student, nil)

	resp := doRequest(t, app, "DELETE", fmt.Sprintf("/api/courses/%d", course.ID), admin, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
