package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/skillquest/backend/models"
	"github.com/skillquest/backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteLessonAwardsXPOnce(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user, token := createUser(t, db, cfg, "Student", "xp@example.com", models.RoleStudent)
	course := createCourse(t, db, "Free Course", 0, models.CourseStatusPublished)
	lesson := createLesson(t, db, course.ID, "Lesson 1", 1)

	doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)

	resp := doRequest(t, app, "POST", "/api/users/progress", token,
		map[string]interface{}{"lesson_id": lesson.ID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, false, result["already_completed"])
	assert.Equal(t, float64(services.LessonXPAward), result["xp"])
	assert.Equal(t, float64(1), result["level"])

	// retry must not re-award
	resp = doRequest(t, app, "POST", "/api/users/progress", token,
		map[string]interface{}{"lesson_id": lesson.ID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result = decodeBody(t, resp)
	assert.Equal(t, true, result["already_completed"])
	assert.Equal(t, float64(services.LessonXPAward), result["xp"])

	var rows int64
	require.NoError(t, db.Model(&models.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestCompleteLessonLevelsUp(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user, token := createUser(t, db, cfg, "Student", "level@example.com", models.RoleStudent)
	course := createCourse(t, db, "Free Course", 0, models.CourseStatusPublished)
	lesson := createLesson(t, db, course.ID, "Lesson 1", 1)

	doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"xp": 95, "level": 1}).Error)

	resp := doRequest(t, app, "POST", "/api/users/progress", token,
		map[string]interface{}{"lesson_id": lesson.ID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, float64(105), result["xp"])
	assert.Equal(t, float64(2), result["level"])

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, services.LevelForXP(updated.XP), updated.Level)
}

func TestCompleteLessonRequiresAccess(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Student", "gate@example.com", models.RoleStudent)
	course := createCourse(t, db, "Paid Course", 49.99, models.CourseStatusPublished)
	lesson := createLesson(t, db, course.ID, "Lesson 1", 1)

	// not enrolled at all
	resp := doRequest(t, app, "POST", "/api/users/progress", token,
		map[string]interface{}{"lesson_id": lesson.ID})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// enrolled but payment pending
	doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	resp = doRequest(t, app, "POST", "/api/users/progress", token,
		map[string]interface{}{"lesson_id": lesson.ID})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCompleteLessonMissingLesson(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Student", "missing@example.com", models.RoleStudent)

	resp := doRequest(t, app, "POST", "/api/users/progress", token,
		map[string]interface{}{"lesson_id": 9999})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/users/progress", token, map[string]interface{}{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFirstLessonEarnsBadge(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user, token := createUser(t, db, cfg, "Student", "badge@example.com", models.RoleStudent)
	course := createCourse(t, db, "Free Course", 0, models.CourseStatusPublished)
	lesson := createLesson(t, db, course.ID, "Lesson 1", 1)

	doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	resp := doRequest(t, app, "POST", "/api/users/progress", token,
		map[string]interface{}{"lesson_id": lesson.ID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	newBadges := result["new_badges"].([]interface{})
	types := make([]string, 0, len(newBadges))
	for _, b := range newBadges {
		types = append(types, b.(map[string]interface{})["badge_type"].(string))
	}
	assert.Contains(t, types, "first_steps")

	var stored models.UserBadge
	require.NoError(t, db.Where("user_id = ? AND badge_type = ?", user.ID, "first_steps").
		First(&stored).Error)

	resp = doRequest(t, app, "GET", "/api/badges", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	badges := decodeBody(t, resp)["data"].([]interface{})
	assert.NotEmpty(t, badges)
}

func TestGetProgress(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Student", "progress@example.com", models.RoleStudent)
	course := createCourse(t, db, "Free Course", 0, models.CourseStatusPublished)
	lesson := createLesson(t, db, course.ID, "Lesson 1", 1)
	createLesson(t, db, course.ID, "Lesson 2", 2)

	doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	doRequest(t, app, "POST", "/api/users/progress", token,
		map[string]interface{}{"lesson_id": lesson.ID})

	resp := doRequest(t, app, "GET", "/api/users/progress", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, float64(services.LessonXPAward), result["xp"])
	assert.Equal(t, float64(1), result["lessons_completed"])
	courses := result["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, float64(50), courses[0].(map[string]interface{})["completion"])
}
