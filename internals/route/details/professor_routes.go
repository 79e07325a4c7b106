package details

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"opencourse_backend/internals/constants"
	centerController "opencourse_backend/internals/features/courses/center/controller"
	courseController "opencourse_backend/internals/features/courses/course/controller"
	enrollmentController "opencourse_backend/internals/features/courses/enrollment/controller"
	handoutController "opencourse_backend/internals/features/courses/handout/controller"
	joinRequestController "opencourse_backend/internals/features/courses/join_request/controller"
	authMw "opencourse_backend/internals/middlewares/auth"
)

// ProfessorRoutes: everything behind the professor role. Per-object access
// is still checked inside the controllers; the role gate here only filters
// the capability class.
//
// Auth rides on each route, not on the group: the /courses and /centers
// prefixes also carry public detail and search pages.
func ProfessorRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	courses := courseController.NewCourseController(db, v)
	centers := centerController.NewCenterController(db, v)
	handouts := handoutController.NewHandoutController(db, v)
	enrollments := enrollmentController.NewEnrollmentController(db, v)
	joinRequests := joinRequestController.NewJoinRequestController(db, v)

	requireAuth := authMw.AuthMiddleware(db)
	onlyProfessor := authMw.OnlyRoles(
		fmt.Sprintf(constants.ErrOnlyProfessorsCanAccess, "this resource"),
		constants.RoleProfessor,
	)

	api.Get("/courses/list", requireAuth, onlyProfessor, courses.ListMine)
	api.Post("/courses", requireAuth, onlyProfessor, courses.Create)
	api.Put("/courses/:id", requireAuth, onlyProfessor, courses.Edit)
	api.Delete("/courses/:id", requireAuth, onlyProfessor, courses.Delete)
	api.Get("/courses/:id/students", requireAuth, onlyProfessor, courses.StudentsList)

	// Handout listing is open to both roles: the controller decides between
	// the professor grant and the accepted-enrollment gate.
	api.Get("/courses/:id/handouts", requireAuth, handouts.List)
	api.Post("/courses/:id/handouts", requireAuth, onlyProfessor, handouts.Create)
	api.Put("/handouts/:id", requireAuth, onlyProfessor, handouts.Edit)
	api.Delete("/handouts/:id", requireAuth, onlyProfessor, handouts.Delete)

	api.Get("/centers/list", requireAuth, onlyProfessor, centers.ListMine)
	api.Post("/centers", requireAuth, onlyProfessor, centers.Create)
	api.Put("/centers/:id", requireAuth, onlyProfessor, centers.Edit)
	api.Delete("/centers/:id", requireAuth, onlyProfessor, centers.Delete)

	api.Get("/join-requests/list", requireAuth, onlyProfessor, joinRequests.MyList)
	api.Get("/join-requests/incoming", requireAuth, onlyProfessor, joinRequests.AdminList)
	api.Post("/join-requests", requireAuth, onlyProfessor, joinRequests.Create)
	api.Put("/join-requests/:id", requireAuth, onlyProfessor, joinRequests.UpdateStatus)

	api.Get("/enrollments/incoming", requireAuth, onlyProfessor, enrollments.ProfessorList)
	api.Put("/enrollments/:id", requireAuth, onlyProfessor, enrollments.UpdateStatus)
}
