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

type QuizzesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuizzesController(db *gorm.DB, cfg *config.Config) *QuizzesController {
	return &QuizzesController{DB: db, Cfg: cfg}
}

func (qc *QuizzesController) ListCourseQuizzes(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var quizzes []models.Quiz
	if err := qc.DB.Where("course_id = ?", courseID).Find(&quizzes).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, quizzes)
}

// GetQuiz returns the quiz with its questions in order. Correct answers
// are never serialized.
func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var quiz models.Quiz
	if err := qc.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	access, err := services.HasAccess(qc.DB, userID, quiz.CourseID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if !access {
		return utils.Forbidden(c, "Course access required")
	}

	return c.JSON(quiz)
}

// SubmitAttempt grades an answer sheet against the quiz's questions in
// display order. The first passing attempt awards quiz XP once; later
// passes record the attempt with no award.
func (qc *QuizzesController) SubmitAttempt(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	type AttemptInput struct {
		Answers []int `json:"answers"`
	}
	var input AttemptInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var quiz models.Quiz
	if err := qc.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if len(quiz.Questions) == 0 {
		return utils.BadRequest(c, "Quiz has no questions")
	}
	if len(input.Answers) != len(quiz.Questions) {
		return utils.BadRequest(c, "Answer count does not match question count")
	}

	access, err := services.HasAccess(qc.DB, userID, quiz.CourseID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if !access {
		return utils.Forbidden(c, "Course access required")
	}

	correct := 0
	for i, question := range quiz.Questions {
		if input.Answers[i] == question.CorrectIndex {
			correct++
		}
	}
	score := float64(correct) / float64(len(quiz.Questions)) * 100
	passed := score >= float64(quiz.PassScore)

	attempt := models.QuizAttempt{
		UserID: userID,
		QuizID: quiz.ID,
		Score:  score,
		Passed: passed,
	}

	var user models.User
	var newBadges []models.UserBadge
	err = qc.DB.Transaction(func(tx *gorm.DB) error {
		if passed {
			var priorPasses int64
			if err := tx.Model(&models.QuizAttempt{}).
				Where("user_id = ? AND quiz_id = ? AND passed = ?", userID, quiz.ID, true).
				Count(&priorPasses).Error; err != nil {
				return err
			}
			if priorPasses == 0 {
				attempt.XPAwarded = services.QuizXPAward
			}
		}

		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		if attempt.XPAwarded > 0 {
			awarded, err := services.AwardXP(tx, userID, attempt.XPAwarded)
			if err != nil {
				return err
			}
			user = awarded

			badges, err := services.SyncBadges(tx, userID)
			if err != nil {
				return err
			}
			newBadges = badges
			return nil
		}

		return tx.First(&user, userID).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not record attempt")
	}

	return c.JSON(fiber.Map{
		"attempt":    attempt,
		"xp":         user.XP,
		"level":      user.Level,
		"new_badges": newBadges,
	})
}

type QuizInput struct {
	Title     string `json:"title" validate:"required"`
	PassScore int    `json:"pass_score" validate:"gte=0,lte=100"`
}

func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := qc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input QuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	quiz := models.Quiz{
		CourseID:  course.ID,
		Title:     input.Title,
		PassScore: input.PassScore,
	}
	if quiz.PassScore == 0 {
		quiz.PassScore = 70
	}
	if err := qc.DB.Create(&quiz).Error; err != nil {
		return utils.InternalServerError(c, "Could not create quiz")
	}

	return utils.Created(c, quiz)
}

type QuestionInput struct {
	Prompt       string `json:"prompt" validate:"required"`
	Options      string `json:"options" validate:"required"`
	CorrectIndex int    `json:"correct_index" validate:"gte=0"`
	OrderIndex   int    `json:"order_index" validate:"gte=0"`
}

func (qc *QuizzesController) AddQuestion(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var quiz models.Quiz
	if err := qc.DB.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input QuestionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	question := models.QuizQuestion{
		QuizID:       quiz.ID,
		Prompt:       input.Prompt,
		Options:      input.Options,
		CorrectIndex: input.CorrectIndex,
		OrderIndex:   input.OrderIndex,
	}
	if err := qc.DB.Create(&question).Error; err != nil {
		return utils.InternalServerError(c, "Could not create question")
	}

	return utils.Created(c, question)
}
