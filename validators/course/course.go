package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateCourseRequest struct {
	Name        string  `json:"name" form:"name" validate:"required,min=3"`
	Description string  `json:"description" form:"description" validate:"required,min=10"`
	Category    string  `json:"category" form:"category"`
	Duration    int64   `json:"duration" form:"duration" validate:"required,min=1"`
	Level       string  `json:"level" form:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	IsPaid      bool    `json:"is_paid" form:"is_paid"`
	Price       float64 `json:"price" form:"price" validate:"min=0"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := middleware.Validate.Struct(reqData); err != nil {
			errors = middleware.FieldErrors(err)
		}

		// Price is only meaningful for a paid course
		if reqData.IsPaid && reqData.Price <= 0 {
			errors["price"] = "Price must be greater than 0 for a paid course!"
		}
		if !reqData.IsPaid {
			reqData.Price = 0
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

type UpdateCourseRequest struct {
	Name        *string  `json:"name" form:"name" validate:"omitempty,min=3"`
	Description *string  `json:"description" form:"description" validate:"omitempty,min=10"`
	Category    *string  `json:"category" form:"category"`
	Duration    *int64   `json:"duration" form:"duration" validate:"omitempty,min=1"`
	Level       *string  `json:"level" form:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	IsPaid      *bool    `json:"is_paid" form:"is_paid"`
	Price       *float64 `json:"price" form:"price" validate:"omitempty,min=0"`
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := middleware.Validate.Struct(reqData); err != nil {
			errors = middleware.FieldErrors(err)
		}

		if reqData.IsPaid != nil && *reqData.IsPaid && (reqData.Price == nil || *reqData.Price <= 0) {
			errors["price"] = "Price must be greater than 0 for a paid course!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// Sort fields accepted by the course list
var allowedSortFields = map[string]bool{
	"created_at": true,
	"name":       true,
	"price":      true,
	"duration":   true,
	"rating":     true,
}

type CourseListRequest struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Category  string `query:"category"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseListRequest)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		// Defaults mirror the list contract: newest first, 10 per page
		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = 10
		}
		if reqData.SortBy == "" {
			reqData.SortBy = "created_at"
		}
		if reqData.SortOrder == "" {
			reqData.SortOrder = "desc"
		}

		errors := make(map[string]string)
		if !allowedSortFields[reqData.SortBy] {
			errors["sortBy"] = "Invalid sort field!"
		}
		if reqData.SortOrder != "asc" && reqData.SortOrder != "desc" {
			errors["sortOrder"] = "Sort order must be asc or desc!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// CourseID validates the :id path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

type AddContentRequest struct {
	Title string `json:"title" form:"title" validate:"required"`
	Type  string `json:"type" form:"type" validate:"required,oneof=pdf image assignment notice"`
}

func AddContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddContentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}
