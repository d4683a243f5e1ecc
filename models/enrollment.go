package models

import "gorm.io/gorm"

const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusFailed   = "failed"
)

// Enrollment records that a user requested a course. AccessGranted is the
// gate for lesson content: it flips true immediately for free courses and
// only through payment approval for paid ones. Rows are never hard-deleted.
type Enrollment struct {
	gorm.Model
	UserID        uint   `gorm:"uniqueIndex:idx_user_course;not null" json:"user_id"`
	CourseID      uint   `gorm:"uniqueIndex:idx_user_course;not null" json:"course_id"`
	PaymentStatus string `gorm:"default:pending" json:"payment_status"` // pending, approved
	AccessGranted bool   `gorm:"default:false" json:"access_granted"`
}
