package courseController

import (
	"math"
	"sort"
	"strings"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// instructorSummary limits the joined instructor to its public fields
func instructorSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "profile_picture", "bio")
}

// rewriteFileURLs turns stored file paths into servable URLs
func rewriteFileURLs(course *models.Course) {
	course.Thumbnail = utils.GetFileURL(course.Thumbnail)
	if course.Instructor != nil {
		course.Instructor.ProfilePicture = utils.GetFileURL(course.Instructor.ProfilePicture)
	}
	for i := range course.Content {
		course.Content[i].FilePath = utils.GetFileURL(course.Content[i].FilePath)
	}
}

func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*courseValidator.CourseListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db.Model(&models.Course{}).Where("is_deleted = ?", false)

	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if reqData.Search != "" {
		// Case-insensitive match against name and description
		pattern := "%" + strings.ToLower(reqData.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	// Get total count
	var total int64
	db.Count(&total)

	offset := (reqData.Page - 1) * reqData.Limit

	var courses []models.Course
	if err := db.Preload("Instructor", instructorSummary).
		Order(reqData.SortBy + " " + reqData.SortOrder).
		Offset(offset).Limit(reqData.Limit).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	for i := range courses {
		rewriteFileURLs(&courses[i])
	}

	totalPages := int(math.Ceil(float64(total) / float64(reqData.Limit)))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses":     courses,
		"totalPages":  totalPages,
		"currentPage": reqData.Page,
		"total":       total,
	})
}

type trendingCourse struct {
	models.Course
	Enrollments   int64   `json:"enrollments"`
	TrendingScore float64 `json:"trending_score"`
}

func GetTrendingCourses(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 4)
	if limit < 1 {
		limit = 4
	}

	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("is_deleted = ?", false).
		Preload("Instructor", instructorSummary).
		Order("id asc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trending courses!", nil)
	}

	// Enrollment counts per course
	type enrollmentCount struct {
		CourseID uint
		Total    int64
	}
	var counts []enrollmentCount
	if err := db.Model(&models.Enrollment{}).
		Select("course_id, COUNT(*) as total").
		Group("course_id").
		Scan(&counts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trending courses!", nil)
	}
	countByCourse := make(map[uint]int64, len(counts))
	for _, ec := range counts {
		countByCourse[ec.CourseID] = ec.Total
	}

	// Trending score: enrollments weighted x2, rating x1.5, plus age in days
	now := time.Now()
	ranked := make([]trendingCourse, 0, len(courses))
	for i := range courses {
		rewriteFileURLs(&courses[i])
		enrollments := countByCourse[courses[i].ID]
		score := float64(enrollments)*2 +
			courses[i].Rating*1.5 +
			now.Sub(courses[i].CreatedAt).Hours()/24
		ranked = append(ranked, trendingCourse{
			Course:        courses[i],
			Enrollments:   enrollments,
			TrendingScore: score,
		})
	}

	// Stable sort keeps query order on ties
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TrendingScore > ranked[j].TrendingScore
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trending courses fetched successfully!", ranked)
}

func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", courseID, false).
		Preload("Instructor", instructorSummary).
		Preload("Content", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	rewriteFileURLs(&course)

	// Personalize for a logged-in instructor viewing their own course
	isInstructor := false
	if userID, ok := c.Locals("userId").(uint); ok && userID == course.InstructorID {
		isInstructor = true
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course retrieved successfully!", fiber.Map{
		"course":       course,
		"isInstructor": isInstructor,
	})
}
