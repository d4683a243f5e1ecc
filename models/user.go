package models

import "gorm.io/gorm"

const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

type User struct {
	gorm.Model
	Name         string `json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:student" json:"role"` // student, instructor, admin
	XP           int    `gorm:"default:0" json:"xp"`
	Level        int    `gorm:"default:1" json:"level"`
}
