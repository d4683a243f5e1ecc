package models

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress is the per-user, per-lesson completion record. The
// composite unique index is the backstop against duplicate rows when a
// client retries the completion request.
type LessonProgress struct {
	gorm.Model
	UserID      uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"user_id"`
	LessonID    uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"lesson_id"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
