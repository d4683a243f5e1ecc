package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/skillquest/backend/config"
	"github.com/skillquest/backend/models"
	"github.com/skillquest/backend/services"
	"github.com/skillquest/backend/utils"
	"gorm.io/gorm"
)

type EnrollmentsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewEnrollmentsController(db *gorm.DB, cfg *config.Config) *EnrollmentsController {
	return &EnrollmentsController{DB: db, Cfg: cfg}
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Free courses grant access immediately; paid courses start
// @Description pending until the payment webhook approves them. Repeated
// @Description calls are a no-op carrying already_enrolled=true.
// @Tags enrollments
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id}/enroll [post]
func (ec *EnrollmentsController) Enroll(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := ec.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if course.Status != models.CourseStatusPublished {
		return utils.NotFound(c, "Course not found")
	}

	enrollment, created, err := services.Enroll(ec.DB, userID, course)
	if err != nil {
		return utils.InternalServerError(c, "Could not enroll")
	}

	status := fiber.StatusCreated
	if !created {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{
		"enrollment":       enrollment,
		"already_enrolled": !created,
	})
}

// CheckAccess reports whether the caller may view the course's lessons.
func (ec *EnrollmentsController) CheckAccess(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := ec.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	access, err := services.HasAccess(ec.DB, userID, course.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{"access": access})
}

// MyEnrollments lists the caller's enrollments with completion percentages.
func (ec *EnrollmentsController) MyEnrollments(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var enrollments []models.Enrollment
	if err := ec.DB.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(enrollments))
	for _, enrollment := range enrollments {
		var course models.Course
		if err := ec.DB.First(&course, enrollment.CourseID).Error; err != nil {
			continue
		}

		completion, err := services.CourseCompletion(ec.DB, userID, course.ID)
		if err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}

		result = append(result, fiber.Map{
			"course_id":      course.ID,
			"title":          course.Title,
			"category":       course.Category,
			"payment_status": enrollment.PaymentStatus,
			"access_granted": enrollment.AccessGranted,
			"completion":     completion,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}
