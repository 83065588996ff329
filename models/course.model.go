package models

import (
	"time"

	"gorm.io/gorm"
)

// Course levels
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Course represents a learning course owned by an instructor
type Course struct {
	gorm.Model
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category" gorm:"default:''"`
	InstructorID uint            `json:"instructor_id" gorm:"index;not null"`
	Instructor   *User           `json:"instructor,omitempty"`
	Duration     int64           `json:"duration" gorm:"default:0"` // duration in hours
	Level        string          `json:"level" gorm:"default:'Beginner'"`
	Thumbnail    string          `json:"thumbnail" gorm:"default:''"`
	IsPaid       bool            `json:"is_paid" gorm:"default:false"`
	Price        float64         `json:"price" gorm:"default:0"` // 0 unless IsPaid
	Rating       float64         `json:"rating" gorm:"default:0"`
	Content      []CourseContent `json:"content,omitempty"`
	IsDeleted    bool            `json:"-" gorm:"default:false"`
}

// Content item types
const (
	ContentTypePDF        = "pdf"
	ContentTypeImage      = "image"
	ContentTypeAssignment = "assignment"
	ContentTypeNotice     = "notice"
)

// CourseContent is a single content item attached to a course, ordered by insertion
type CourseContent struct {
	gorm.Model
	CourseID   uint      `json:"course_id" gorm:"index;not null"`
	Title      string    `json:"title"`
	Type       string    `json:"type"` // pdf, image, assignment, notice
	FilePath   string    `json:"file_path"`
	UploadDate time.Time `json:"upload_date"`
}
