package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "opencourse_backend/internals/features/users/auth/controller"
	"opencourse_backend/internals/middlewares"
)

func AuthRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := authController.New(db, v)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
}
