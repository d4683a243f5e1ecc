package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/skillquest/backend/models"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrInvalidTransition  = errors.New("invalid payment transition")
	ErrEnrollmentRequired = errors.New("no pending enrollment for course")
)

// CreateIntent opens a payment for a paid course. The user must hold a
// pending enrollment; the generated external reference is what the
// provider echoes back on its webhook.
func CreateIntent(db *gorm.DB, userID uint, course models.Course) (models.Payment, error) {
	var payment models.Payment

	var enrollment models.Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND payment_status = ?",
		userID, course.ID, models.PaymentStatusPending).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payment, ErrEnrollmentRequired
	}
	if err != nil {
		return payment, err
	}

	payment = models.Payment{
		UserID:            userID,
		CourseID:          course.ID,
		Amount:            course.Price,
		Currency:          "USD",
		Status:            models.PaymentStatusPending,
		ExternalReference: uuid.NewString(),
	}
	if err := db.Create(&payment).Error; err != nil {
		return payment, err
	}

	return payment, nil
}

// WebhookEvent is the provider callback payload.
type WebhookEvent struct {
	ProviderPaymentID string `json:"provider_payment_id"`
	Status            string `json:"status"`
	ExternalReference string `json:"external_reference"`
}

// ApplyWebhook runs the payment state machine: pending -> approved|failed.
// Approval flips the enrollment's access grant in the same transaction;
// this is the only code path that grants access to a paid course. Unknown
// references and non-pending payments are rejected without mutating state.
func ApplyWebhook(db *gorm.DB, evt WebhookEvent) (models.Payment, error) {
	var payment models.Payment

	if evt.Status != models.PaymentStatusApproved && evt.Status != models.PaymentStatusFailed {
		return payment, ErrInvalidTransition
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("external_reference = ?", evt.ExternalReference).First(&payment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		if err != nil {
			return err
		}

		if payment.Status != models.PaymentStatusPending {
			return ErrInvalidTransition
		}

		payment.Status = evt.Status
		payment.ProviderPaymentID = evt.ProviderPaymentID
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if payment.Status != models.PaymentStatusApproved {
			return nil
		}

		res := tx.Model(&models.Enrollment{}).
			Where("user_id = ? AND course_id = ?", payment.UserID, payment.CourseID).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusApproved,
				"access_granted": true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEnrollmentRequired
		}

		return tx.Model(&models.Course{}).Where("id = ?", payment.CourseID).
			UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + 1")).Error
	})

	return payment, err
}
