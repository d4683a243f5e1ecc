package controllers

import (
	"crypto/subtle"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/skillquest/backend/config"
	"github.com/skillquest/backend/models"
	"github.com/skillquest/backend/services"
	"github.com/skillquest/backend/utils"
	"gorm.io/gorm"
)

type PaymentsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPaymentsController(db *gorm.DB, cfg *config.Config) *PaymentsController {
	return &PaymentsController{DB: db, Cfg: cfg}
}

// CreatePayment godoc
// @Summary Create a payment intent
// @Description Opens a pending payment for a paid course the caller has a
// @Description pending enrollment on; returns the external reference the
// @Description provider will echo back on its webhook.
// @Tags payments
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /payments [post]
func (pc *PaymentsController) CreatePayment(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type PaymentInput struct {
		CourseID uint `json:"course_id"`
	}
	var input PaymentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.CourseID == 0 {
		return utils.BadRequest(c, "course_id is required")
	}

	var course models.Course
	if err := pc.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if course.Price == 0 {
		return utils.BadRequest(c, "Course is free")
	}

	payment, err := services.CreateIntent(pc.DB, userID, course)
	if err != nil {
		if errors.Is(err, services.ErrEnrollmentRequired) {
			return utils.BadRequest(c, "No pending enrollment for course")
		}
		return utils.InternalServerError(c, "Could not create payment")
	}

	return utils.Created(c, payment)
}

// ListPayments returns the caller's payments, newest first.
func (pc *PaymentsController) ListPayments(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var payments []models.Payment
	if err := pc.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, payments)
}

// Webhook godoc
// @Summary Payment provider callback
// @Description Applies the pending -> approved|failed transition keyed by
// @Description the external reference. This is the only path that grants
// @Description access to a paid course. Guarded by a shared secret header.
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /payments/webhook [post]
func (pc *PaymentsController) Webhook(c *fiber.Ctx) error {
	secret := c.Get("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(pc.Cfg.WebhookSecret)) != 1 {
		return utils.Unauthorized(c, "Invalid webhook secret")
	}

	var evt services.WebhookEvent
	if err := c.BodyParser(&evt); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if evt.ExternalReference == "" {
		return utils.BadRequest(c, "external_reference is required")
	}

	payment, err := services.ApplyWebhook(pc.DB, evt)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return utils.NotFound(c, "Payment not found")
		case errors.Is(err, services.ErrInvalidTransition):
			return utils.Conflict(c, "Invalid payment transition")
		case errors.Is(err, services.ErrEnrollmentRequired):
			return utils.Conflict(c, "No enrollment for payment")
		default:
			return utils.InternalServerError(c, "Could not apply webhook")
		}
	}

	return utils.Success(c, fiber.StatusOK, payment)
}
