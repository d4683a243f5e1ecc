package models

import (
	"time"

	"gorm.io/gorm"
)

// UserBadge is a persisted achievement event. Badge possession is read from
// these rows, never recomputed from live counters, so a badge stays earned
// even if the counter that unlocked it later drops.
type UserBadge struct {
	gorm.Model
	UserID    uint      `gorm:"uniqueIndex:idx_user_badge;not null" json:"user_id"`
	BadgeType string    `gorm:"uniqueIndex:idx_user_badge;not null" json:"badge_type"`
	EarnedAt  time.Time `json:"earned_at"`
}
