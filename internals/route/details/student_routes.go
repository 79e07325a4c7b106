package details

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"opencourse_backend/internals/constants"
	enrollmentController "opencourse_backend/internals/features/courses/enrollment/controller"
	authMw "opencourse_backend/internals/middlewares/auth"
)

// StudentRoutes: enrollment self-service.
func StudentRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	enrollments := enrollmentController.NewEnrollmentController(db, v)

	requireAuth := authMw.AuthMiddleware(db)
	onlyStudent := authMw.OnlyRoles(
		fmt.Sprintf(constants.ErrOnlyStudentsCanAccess, "enrollments"),
		constants.RoleStudent,
	)

	api.Get("/enrollments/list", requireAuth, onlyStudent, enrollments.StudentList)
	api.Post("/enrollments", requireAuth, onlyStudent, enrollments.Create)
}
