package services

import (
	"errors"
	"time"

	"github.com/skillquest/backend/models"
	"gorm.io/gorm"
)

// CompletionResult describes the outcome of a lesson-completion request.
type CompletionResult struct {
	Progress         models.LessonProgress
	User             models.User
	NewBadges        []models.UserBadge
	AlreadyCompleted bool
}

// CompleteLesson marks the lesson complete and awards XP exactly once.
// Marking complete, the XP/level update and badge awards run in a single
// transaction so a failure leaves no half-applied state. A repeated call
// for an already-completed lesson is a no-op that awards nothing.
func CompleteLesson(db *gorm.DB, userID, lessonID uint) (CompletionResult, error) {
	var result CompletionResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.LessonProgress
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&existing).Error
		if err == nil && existing.Completed {
			result.Progress = existing
			result.AlreadyCompleted = true
			return tx.First(&result.User, userID).Error
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			existing = models.LessonProgress{UserID: userID, LessonID: lessonID}
		}
		existing.Completed = true
		existing.CompletedAt = &now
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		result.Progress = existing

		user, err := AwardXP(tx, userID, LessonXPAward)
		if err != nil {
			return err
		}
		result.User = user

		badges, err := SyncBadges(tx, userID)
		if err != nil {
			return err
		}
		result.NewBadges = badges
		return nil
	})

	return result, err
}

// CourseCompletion returns the user's completion percentage for a course.
func CourseCompletion(db *gorm.DB, userID, courseID uint) (float64, error) {
	var total int64
	if err := db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	var completed int64
	err := db.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.user_id = ? AND lesson_progresses.completed = ? AND lessons.course_id = ?",
			userID, true, courseID).
		Count(&completed).Error
	if err != nil {
		return 0, err
	}

	return float64(completed) / float64(total) * 100, nil
}
