package details

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"opencourse_backend/internals/constants"
	authController "opencourse_backend/internals/features/users/auth/controller"
	profileController "opencourse_backend/internals/features/users/profile/controller"
	authMw "opencourse_backend/internals/middlewares/auth"
)

// ProfileRoutes: the signed-in user's own profile plus review submission.
// Auth rides on each route because /profiles/professor/:id stays public.
func ProfileRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	authCtrl := authController.New(db, v)
	professors := profileController.NewProfessorController(db, v)
	students := profileController.NewStudentController(db, v)
	reviews := profileController.NewReviewController(db, v)

	requireAuth := authMw.AuthMiddleware(db)
	onlyProfessor := authMw.OnlyRoles(
		fmt.Sprintf(constants.ErrOnlyProfessorsCanAccess, "professor profiles"),
		constants.RoleProfessor,
	)
	onlyStudent := authMw.OnlyRoles(
		fmt.Sprintf(constants.ErrOnlyStudentsCanAccess, "student profiles"),
		constants.RoleStudent,
	)

	api.Get("/profiles/dispatch-login", requireAuth, authCtrl.DispatchLogin)

	api.Get("/profiles/professor", requireAuth, onlyProfessor, professors.GetMe)
	api.Put("/profiles/professor", requireAuth, onlyProfessor, professors.UpdateMe)

	api.Get("/profiles/student", requireAuth, onlyStudent, students.GetMe)
	api.Put("/profiles/student", requireAuth, onlyStudent, students.UpdateMe)

	api.Post("/profiles/professor/:id/add-review",
		requireAuth,
		authMw.OnlyRoles(
			fmt.Sprintf(constants.ErrOnlyStudentsCanAccess, "reviews"),
			constants.RoleStudent,
		),
		reviews.Create,
	)
}
