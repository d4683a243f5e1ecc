package models

import "gorm.io/gorm"

type Quiz struct {
	gorm.Model
	CourseID  uint           `gorm:"index;not null" json:"course_id"`
	Title     string         `gorm:"not null" json:"title"`
	PassScore int            `gorm:"default:70" json:"pass_score"` // percent
	Questions []QuizQuestion `json:"questions,omitempty"`
}

type QuizQuestion struct {
	gorm.Model
	QuizID       uint   `gorm:"index;not null" json:"quiz_id"`
	Prompt       string `gorm:"not null" json:"prompt"`
	Options      string `json:"options"` // JSON array of options
	CorrectIndex int    `json:"-"`
	OrderIndex   int    `json:"order_index"`
}

type QuizAttempt struct {
	gorm.Model
	UserID    uint    `gorm:"index;not null" json:"user_id"`
	QuizID    uint    `gorm:"index;not null" json:"quiz_id"`
	Score     float64 `json:"score"` // percent
	Passed    bool    `json:"passed"`
	XPAwarded int     `json:"xp_awarded"`
}
