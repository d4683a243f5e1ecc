package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/skillquest/backend/config"
	"github.com/skillquest/backend/models"
	"github.com/skillquest/backend/services"
	"github.com/skillquest/backend/utils"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// CompleteLesson godoc
// @Summary Mark a lesson complete
// @Description Awards XP exactly once per lesson; repeating the call is a
// @Description no-op. Requires an access grant on the owning course.
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /users/progress [post]
func (pc *ProgressController) CompleteLesson(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type ProgressInput struct {
		LessonID uint `json:"lesson_id"`
	}
	var input ProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.LessonID == 0 {
		return utils.BadRequest(c, "lesson_id is required")
	}

	var lesson models.Lesson
	if err := pc.DB.First(&lesson, input.LessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	access, err := services.HasAccess(pc.DB, userID, lesson.CourseID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if !access {
		return utils.Forbidden(c, "Course access required")
	}

	result, err := services.CompleteLesson(pc.DB, userID, lesson.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not update progress")
	}

	return c.JSON(fiber.Map{
		"progress":          result.Progress,
		"already_completed": result.AlreadyCompleted,
		"xp":                result.User.XP,
		"level":             result.User.Level,
		"new_badges":        result.NewBadges,
	})
}

// GetProgress returns the caller's XP, level and per-course completion.
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var enrollments []models.Enrollment
	if err := pc.DB.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	courses := make([]fiber.Map, 0, len(enrollments))
	for _, enrollment := range enrollments {
		completion, err := services.CourseCompletion(pc.DB, userID, enrollment.CourseID)
		if err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
		courses = append(courses, fiber.Map{
			"course_id":  enrollment.CourseID,
			"completion": completion,
		})
	}

	var lessonsCompleted int64
	if err := pc.DB.Model(&models.LessonProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&lessonsCompleted).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"xp":                user.XP,
		"level":             user.Level,
		"lessons_completed": lessonsCompleted,
		"courses":           courses,
	})
}
