package courseController

import (
	"errors"
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse runs the enrollment workflow: course lookup, duplicate check,
// self-enrollment check, then either a direct insert (free course) or a
// checkout session handoff (paid course, no row written until confirmation).
func EnrollInCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	// Check if course exists
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment models.Enrollment
	if err := db.Where("course_id = ? AND user_id = ?", courseID, user.ID).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User already enrolled in this course!", nil)
	}

	// Instructors cannot enroll in their own courses
	if course.InstructorID == user.ID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Instructors cannot enroll in their own courses!", nil)
	}

	if course.IsPaid {
		// Bind the course and user across the payment redirect
		token, err := middleware.GenerateEnrollmentToken(course.ID, user.ID)
		if err != nil {
			log.Printf("Error signing enrollment token: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Enrollment failed!", nil)
		}

		session, err := utils.CreateCheckoutSession(course.ID, course.Name, course.Price, token)
		if err != nil {
			log.Printf("Error creating checkout session: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Enrollment failed!", nil)
		}

		// No enrollment row yet; the confirm endpoint creates it after payment
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created.", fiber.Map{
			"url": session.URL,
		})
	}

	// Free course: a single insert completes the enrollment
	enrollment := models.Enrollment{
		CourseID:      course.ID,
		UserID:        user.ID,
		PurchaseDate:  time.Now(),
		PaymentStatus: models.PaymentCompleted,
	}

	if err := db.Create(&enrollment).Error; err != nil {
		// The unique index closes the check-then-act race: a concurrent
		// enroll that won the insert surfaces here as a duplicate key.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User already enrolled in this course!", nil)
		}
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Enrollment failed!", nil)
	}

	utils.SendEnrollmentEmail(user.Email, user.Name, course.Name)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Successfully enrolled in the free course", nil)
}

// ConfirmEnrollment finishes a paid enrollment after the payment redirect. The
// continuation token from the checkout success URL is the credential here; the
// endpoint is idempotent so a reloaded success page does not error.
func ConfirmEnrollment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedConfirm").(*courseValidator.ConfirmEnrollmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	courseID, userID, err := middleware.ParseEnrollmentToken(reqData.Token)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired enrollment token!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	enrollment := models.Enrollment{
		CourseID:      course.ID,
		UserID:        user.ID,
		PurchaseDate:  time.Now(),
		PaymentStatus: models.PaymentCompleted,
	}

	if err := db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment already confirmed.", nil)
		}
		log.Printf("Error confirming enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to confirm enrollment!", nil)
	}

	utils.SendEnrollmentEmail(user.Email, user.Name, course.Name)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment confirmed successfully!", enrollment)
}

func GetEnrollments(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollmentList").(*courseValidator.EnrollmentListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (reqData.Page - 1) * reqData.Limit

	db := database.Database.Db.Model(&models.Enrollment{}).Where("user_id = ?", user.ID)

	// Get total count
	var total int64
	db.Count(&total)

	var enrollments []models.Enrollment
	if err := db.Preload("Course", func(db *gorm.DB) *gorm.DB { return db.Where("is_deleted = ?", false) }).
		Order("created_at desc").
		Offset(offset).Limit(reqData.Limit).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	for i := range enrollments {
		if enrollments[i].Course != nil {
			enrollments[i].Course.Thumbnail = utils.GetFileURL(enrollments[i].Course.Thumbnail)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}
