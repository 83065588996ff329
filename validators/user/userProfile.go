package userValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	Name  string `json:"name" form:"name" validate:"omitempty,min=2"`
	Email string `json:"email" form:"email" validate:"omitempty,email"`
	Bio   string `json:"bio" form:"bio" validate:"omitempty,max=500"`
}

func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
