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

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

// ListCourses returns published courses narrowed by the catalog filter
// query params: search, category, level, price (free|paid|premium).
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Where("status = ?", models.CourseStatusPublished).Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	filter := services.CatalogFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Level:    c.Query("level"),
		Price:    c.Query("price"),
	}

	instructorNames, err := cc.instructorNames(courses)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, services.FilterCourses(courses, instructorNames, filter))
}

func (cc *CoursesController) instructorNames(courses []models.Course) (map[uint]string, error) {
	ids := make([]uint, 0, len(courses))
	seen := make(map[uint]bool)
	for _, course := range courses {
		if course.InstructorID != 0 && !seen[course.InstructorID] {
			seen[course.InstructorID] = true
			ids = append(ids, course.InstructorID)
		}
	}
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var instructors []models.User
	if err := cc.DB.Where("id IN ?", ids).Find(&instructors).Error; err != nil {
		return nil, err
	}
	for _, u := range instructors {
		names[u.ID] = u.Name
	}
	return names, nil
}

// GetCourse returns course details with lessons in display order. Video
// references are stripped unless the caller holds an access grant.
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	access, err := services.HasAccess(cc.DB, userID, course.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if !access {
		for i := range course.Lessons {
			course.Lessons[i].VideoURL = ""
		}
	}

	return c.JSON(fiber.Map{
		"course": course,
		"access": access,
	})
}

type CourseInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Level       string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price       float64 `json:"price" validate:"gte=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=draft published"`
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	course := models.Course{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Level:        input.Level,
		Price:        input.Price,
		Status:       models.CourseStatusDraft,
		InstructorID: userID,
	}
	if input.Status != "" {
		course.Status = input.Status
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.Created(c, course)
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	course.Title = input.Title
	course.Description = input.Description
	course.Category = input.Category
	course.Level = input.Level
	course.Price = input.Price
	if input.Status != "" {
		course.Status = input.Status
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return utils.Success(c, fiber.StatusOK, course)
}

// DeleteCourse removes a course that has no enrollments. Enrolled courses
// stay, since enrollments are never hard-deleted.
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var enrollments int64
	if err := cc.DB.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).
		Count(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if enrollments > 0 {
		return utils.Conflict(c, "Course has enrollments")
	}

	if err := cc.DB.Delete(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": course.ID})
}

type LessonInput struct {
	Title      string `json:"title" validate:"required"`
	VideoURL   string `json:"video_url"`
	Duration   int    `json:"duration" validate:"gte=0"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

func (cc *CoursesController) AddLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	lesson := models.Lesson{
		CourseID:   course.ID,
		Title:      input.Title,
		VideoURL:   input.VideoURL,
		Duration:   input.Duration,
		OrderIndex: input.OrderIndex,
	}
	if err := cc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}

	return utils.Created(c, lesson)
}

func (cc *CoursesController) UpdateLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := cc.DB.Where("course_id = ?", courseID).First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	lesson.Title = input.Title
	lesson.VideoURL = input.VideoURL
	lesson.Duration = input.Duration
	lesson.OrderIndex = input.OrderIndex
	if err := cc.DB.Save(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not update lesson")
	}

	return utils.Success(c, fiber.StatusOK, lesson)
}

func (cc *CoursesController) DeleteLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := cc.DB.Where("course_id = ?", courseID).First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.DB.Delete(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete lesson")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": lesson.ID})
}
