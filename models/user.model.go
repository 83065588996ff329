package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

type User struct {
	gorm.Model
	Name           string `json:"name" gorm:"default:''"`
	Email          string `json:"email" gorm:"unique;not null"`
	Password       string `json:"-" gorm:"not null"`
	Role           string `json:"role" gorm:"default:'student'"` // student, instructor
	ProfilePicture string `json:"profile_picture" gorm:"default:''"`
	Bio            string `json:"bio" gorm:"default:''"`
	IsDeleted      bool   `json:"-" gorm:"default:false"`
}
