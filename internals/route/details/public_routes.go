package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	centerController "opencourse_backend/internals/features/courses/center/controller"
	courseController "opencourse_backend/internals/features/courses/course/controller"
	taxonomyController "opencourse_backend/internals/features/courses/taxonomy/controller"
	profileController "opencourse_backend/internals/features/users/profile/controller"
	authMw "opencourse_backend/internals/middlewares/auth"
)

// PublicRoutes: browse and detail pages reachable without a session. Detail
// pages run through the optional auth middleware so signed-in visitors get
// their enrollment / join-request blocks.
func PublicRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	courses := courseController.NewCourseController(db, v)
	centers := centerController.NewCenterController(db, v)
	professors := profileController.NewProfessorController(db, v)
	taxonomy := taxonomyController.NewTaxonomyController(db)

	optional := authMw.OptionalAuthMiddleware(db)

	api.Get("/courses/search", courses.SearchResults)
	api.Get("/courses/:id", optional, courses.Detail)

	api.Get("/centers/search", centers.SearchResults)
	api.Get("/centers/:id", optional, centers.Detail)

	api.Get("/profiles/professor/:id", professors.Detail)
	api.Post("/profiles/professor/:id/contact-request", professors.ContactRequest)

	tax := api.Group("/taxonomy")
	tax.Get("/cities", taxonomy.Cities)
	tax.Get("/levels", taxonomy.Levels)
	tax.Get("/durations", taxonomy.Durations)
	tax.Get("/ages", taxonomy.Ages)
	tax.Get("/areas", taxonomy.Areas)
	tax.Get("/languages", taxonomy.Languages)
	tax.Get("/currencies", taxonomy.Currencies)
	tax.Get("/location-types", taxonomy.LocationTypes)
	tax.Get("/handout-sections", taxonomy.HandoutSections)
}
