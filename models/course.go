package models

import "gorm.io/gorm"

const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
)

type Course struct {
	gorm.Model
	Title         string   `gorm:"not null" json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Level         string   `json:"level"` // beginner, intermediate, advanced
	Price         float64  `gorm:"default:0;check:price >= 0" json:"price"`
	Status        string   `gorm:"default:draft" json:"status"` // draft, published
	EnrolledCount int      `gorm:"default:0" json:"enrolled_count"`
	Rating        float64  `gorm:"default:0" json:"rating"`
	InstructorID  uint     `json:"instructor_id"`
	Lessons       []Lesson `json:"lessons,omitempty"`
}

type Lesson struct {
	gorm.Model
	CourseID   uint   `gorm:"index;not null" json:"course_id"`
	Title      string `gorm:"not null" json:"title"`
	VideoURL   string `json:"video_url"`
	Duration   int    `json:"duration"` // minutes
	OrderIndex int    `json:"order_index"`
}
