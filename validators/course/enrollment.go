package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

type ConfirmEnrollmentRequest struct {
	Token string `json:"token" validate:"required"`
}

func ConfirmEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ConfirmEnrollmentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("validatedConfirm", reqData)
		return c.Next()
	}
}

type EnrollmentListRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollmentListRequest)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = 10
		}

		c.Locals("validatedEnrollmentList", reqData)
		return c.Next()
	}
}
