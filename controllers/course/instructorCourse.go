package courseController

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// requireInstructor returns the authenticated user when it holds the
// instructor role, or nil after writing the rejection response.
func requireInstructor(c *fiber.Ctx) *models.User {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return nil
	}
	if user.Role != models.RoleInstructor {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "User is not an instructor!", nil)
		return nil
	}
	return user
}

func CreateCourse(c *fiber.Ctx) error {
	user := requireInstructor(c)
	if user == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	level := reqData.Level
	if level == "" {
		level = models.LevelBeginner
	}

	course := models.Course{
		Name:         reqData.Name,
		Description:  reqData.Description,
		Category:     reqData.Category,
		InstructorID: user.ID,
		Duration:     reqData.Duration,
		Level:        level,
		IsPaid:       reqData.IsPaid,
		Price:        reqData.Price,
	}

	// Optional thumbnail attachment
	if file, err := c.FormFile("thumbnail"); err == nil {
		if !utils.IsImageFile(file.Filename, "jpg", "jpeg", "png", "gif") {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only image files are allowed!", nil)
		}
		if file.Size > utils.MaxThumbnailSize {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail must be 5MB or smaller!", nil)
		}

		storedPath, err := utils.SaveUploadedFile(file, utils.ThumbnailDir)
		if err != nil {
			log.Printf("Error saving thumbnail: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
		}
		course.Thumbnail = storedPath
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func GetInstructorCourses(c *fiber.Ctx) error {
	user := requireInstructor(c)
	if user == nil {
		return nil
	}

	var courses []models.Course
	if err := database.Database.Db.
		Where("instructor_id = ? AND is_deleted = ?", user.ID, false).
		Preload("Instructor", instructorSummary).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	for i := range courses {
		rewriteFileURLs(&courses[i])
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses retrieved successfully!", courses)
}

// UpdateCourse mutates a course. Matching on both course id and instructor id
// means a non-owner's request reads as a missing course.
func UpdateCourse(c *fiber.Ctx) error {
	user := requireInstructor(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND instructor_id = ? AND is_deleted = ?", courseID, user.ID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Name != nil {
		course.Name = *reqData.Name
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Category != nil {
		course.Category = *reqData.Category
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}
	if reqData.Level != nil {
		course.Level = *reqData.Level
	}
	if reqData.IsPaid != nil {
		course.IsPaid = *reqData.IsPaid
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	// Price stays 0 for a free course
	if !course.IsPaid {
		course.Price = 0
	}

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func DeleteCourse(c *fiber.Ctx) error {
	user := requireInstructor(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND instructor_id = ? AND is_deleted = ?", courseID, user.ID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

func AddCourseContent(c *fiber.Ctx) error {
	user := requireInstructor(c)
	if user == nil {
		return nil
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedContent").(*courseValidator.AddContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND instructor_id = ? AND is_deleted = ?", courseID, user.ID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content file is required!", nil)
	}

	// Content files are not restricted by type
	storedPath, err := utils.SaveUploadedFile(file, utils.CourseContentDir)
	if err != nil {
		log.Printf("Error saving content file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content file!", nil)
	}

	content := models.CourseContent{
		CourseID:   course.ID,
		Title:      reqData.Title,
		Type:       reqData.Type,
		FilePath:   storedPath,
		UploadDate: time.Now(),
	}

	if err := db.Create(&content).Error; err != nil {
		log.Printf("Error saving course content: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add course content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content added successfully!", content)
}
