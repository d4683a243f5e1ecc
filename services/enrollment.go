package services

import (
	"errors"

	"github.com/skillquest/backend/models"
	"gorm.io/gorm"
)

// Enroll creates an enrollment for the user on the given course. Free
// courses get immediate access; paid courses start pending with access
// withheld until payment approval. The returned bool is false when an
// enrollment already existed (the call is then a no-op).
func Enroll(db *gorm.DB, userID uint, course models.Course) (models.Enrollment, bool, error) {
	var enrollment models.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&enrollment).Error
	if err == nil {
		return enrollment, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return enrollment, false, err
	}

	enrollment = models.Enrollment{
		UserID:        userID,
		CourseID:      course.ID,
		PaymentStatus: models.PaymentStatusPending,
	}
	if course.Price == 0 {
		enrollment.PaymentStatus = models.PaymentStatusApproved
		enrollment.AccessGranted = true
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		if enrollment.AccessGranted {
			return tx.Model(&models.Course{}).Where("id = ?", course.ID).
				UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + 1")).Error
		}
		return nil
	})
	if err != nil {
		// The unique index on (user_id, course_id) catches a racing
		// duplicate; re-read and report it as already enrolled.
		var existing models.Enrollment
		if ferr := db.Where("user_id = ? AND course_id = ?", userID, course.ID).
			First(&existing).Error; ferr == nil {
			return existing, false, nil
		}
		return enrollment, false, err
	}

	return enrollment, true, nil
}

// HasAccess reports whether the user may view the course's lesson content.
// Missing enrollment means no access: the gate fails closed.
func HasAccess(db *gorm.DB, userID, courseID uint) (bool, error) {
	var enrollment models.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return enrollment.AccessGranted, nil
}
