package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog, enrollment, and instructor routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Catalog (public; detail personalizes when a token is present)
	courseGroup.Get("/", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/trending", controllers.GetTrendingCourses)

	// Instructor routes (registered before /:id so the prefix is not shadowed)
	instructorGroup := courseGroup.Group("/instructor", middleware.JWTMiddleware)
	instructorGroup.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
	instructorGroup.Get("/courses", controllers.GetInstructorCourses)
	instructorGroup.Put("/:id", validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	instructorGroup.Delete("/:id", validators.CourseID(), controllers.DeleteCourse)
	instructorGroup.Post("/:id/content", validators.CourseID(), validators.AddContent(), controllers.AddCourseContent)

	// Paid-enrollment confirmation; the continuation token is the credential
	courseGroup.Post("/enroll/confirm", validators.ConfirmEnrollment(), controllers.ConfirmEnrollment)

	courseGroup.Get("/:id", middleware.OptionalJWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
}
