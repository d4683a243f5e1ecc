package services

import (
	"time"

	"github.com/skillquest/backend/models"
	"gorm.io/gorm"
)

// XP awards. One canonical constant per action; lesson completion and quiz
// passes are the only XP sources.
const (
	LessonXPAward = 10
	QuizXPAward   = 25
)

// LevelForXP derives the level from accumulated XP. Every XP write must go
// through AwardXP so the stored level never diverges from this formula.
func LevelForXP(xp int) int {
	return xp/100 + 1
}

const (
	MetricLessonsCompleted = "lessons_completed"
	MetricEnrollments      = "enrollments"
	MetricLevel            = "level"
	MetricQuizzesPassed    = "quizzes_passed"
)

type BadgeRule struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Metric      string `json:"metric"`
	Threshold   int    `json:"threshold"`
}

// BadgeRules is the fixed rule table. Thresholds are compared against
// UserStats counters; crossing one persists a UserBadge row.
var BadgeRules = []BadgeRule{
	{Type: "first_steps", Title: "First Steps", Description: "Complete your first lesson", Metric: MetricLessonsCompleted, Threshold: 1},
	{Type: "fast_learner", Title: "Fast Learner", Description: "Complete 10 lessons", Metric: MetricLessonsCompleted, Threshold: 10},
	{Type: "marathoner", Title: "Marathoner", Description: "Complete 25 lessons", Metric: MetricLessonsCompleted, Threshold: 25},
	{Type: "explorer", Title: "Explorer", Description: "Enroll in 3 courses", Metric: MetricEnrollments, Threshold: 3},
	{Type: "rising_star", Title: "Rising Star", Description: "Reach level 5", Metric: MetricLevel, Threshold: 5},
	{Type: "quiz_master", Title: "Quiz Master", Description: "Pass 5 quizzes", Metric: MetricQuizzesPassed, Threshold: 5},
}

type UserStats struct {
	LessonsCompleted int
	Enrollments      int
	Level            int
	QuizzesPassed    int
}

func (s UserStats) metric(name string) int {
	switch name {
	case MetricLessonsCompleted:
		return s.LessonsCompleted
	case MetricEnrollments:
		return s.Enrollments
	case MetricLevel:
		return s.Level
	case MetricQuizzesPassed:
		return s.QuizzesPassed
	}
	return 0
}

// EarnedBadges returns the badge types whose threshold the stats satisfy.
func EarnedBadges(s UserStats) []string {
	var earned []string
	for _, rule := range BadgeRules {
		if s.metric(rule.Metric) >= rule.Threshold {
			earned = append(earned, rule.Type)
		}
	}
	return earned
}

// AwardXP increments a user's XP and recomputes the level in the same
// update, keeping the level invariant after every write.
func AwardXP(tx *gorm.DB, userID uint, amount int) (models.User, error) {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return user, err
	}

	user.XP += amount
	user.Level = LevelForXP(user.XP)
	if err := tx.Model(&user).Updates(map[string]interface{}{
		"xp":    user.XP,
		"level": user.Level,
	}).Error; err != nil {
		return user, err
	}

	return user, nil
}

// CollectStats gathers the counters the badge rules are evaluated against.
func CollectStats(tx *gorm.DB, userID uint) (UserStats, error) {
	var stats UserStats

	var lessons int64
	if err := tx.Model(&models.LessonProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&lessons).Error; err != nil {
		return stats, err
	}

	var enrollments int64
	if err := tx.Model(&models.Enrollment{}).
		Where("user_id = ?", userID).
		Count(&enrollments).Error; err != nil {
		return stats, err
	}

	var quizzes int64
	if err := tx.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Distinct("quiz_id").
		Count(&quizzes).Error; err != nil {
		return stats, err
	}

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return stats, err
	}

	stats.LessonsCompleted = int(lessons)
	stats.Enrollments = int(enrollments)
	stats.QuizzesPassed = int(quizzes)
	stats.Level = user.Level
	return stats, nil
}

// SyncBadges persists award rows for every threshold the user has newly
// crossed and returns the new awards. Existing rows are left untouched, so
// earned badges are sticky.
func SyncBadges(tx *gorm.DB, userID uint) ([]models.UserBadge, error) {
	stats, err := CollectStats(tx, userID)
	if err != nil {
		return nil, err
	}

	var existing []models.UserBadge
	if err := tx.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(existing))
	for _, b := range existing {
		owned[b.BadgeType] = true
	}

	var awarded []models.UserBadge
	for _, badgeType := range EarnedBadges(stats) {
		if owned[badgeType] {
			continue
		}
		badge := models.UserBadge{
			UserID:    userID,
			BadgeType: badgeType,
			EarnedAt:  time.Now(),
		}
		if err := tx.Create(&badge).Error; err != nil {
			return nil, err
		}
		awarded = append(awarded, badge)
	}

	return awarded, nil
}
