package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment payment states
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Enrollment links a user to a course. The unique index on (course_id, user_id)
// is what makes two concurrent enroll requests safe: the second insert fails
// with a duplicate-key error instead of producing a second row.
type Enrollment struct {
	gorm.Model
	CourseID      uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_course_user"`
	UserID        uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_course_user"`
	Course        *Course   `json:"course,omitempty"`
	PurchaseDate  time.Time `json:"purchase_date"`
	PaymentStatus string    `json:"payment_status" gorm:"default:'pending'"` // pending, completed, failed
}
