package userRoutes

import (
	courseControllers "lms/controllers/course"
	userControllers "lms/controllers/user"
	"lms/middleware"
	courseValidators "lms/validators/course"
	userValidators "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware)

	userGroup.Get("/profile", userControllers.GetProfile)
	userGroup.Put("/profile", userValidators.UpdateProfile(), userControllers.UpdateProfile)
	userGroup.Delete("/profile", userControllers.DeleteProfile)

	userGroup.Get("/enrollments", courseValidators.EnrollmentList(), courseControllers.GetEnrollments)
}
