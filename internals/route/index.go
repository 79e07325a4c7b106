package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	details "opencourse_backend/internals/route/details"
)

// SetupRoutes wires every feature router under /api.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v := validator.New()
	api := app.Group("/api")

	details.AuthRoutes(api, db, v)
	details.ProfileRoutes(api, db, v)

	// Fixed paths (/courses/list, /centers/list) must register before the
	// public /:id routes or the wildcard swallows them.
	details.ProfessorRoutes(api, db, v)
	details.StudentRoutes(api, db, v)
	details.PublicRoutes(api, db, v)
}
