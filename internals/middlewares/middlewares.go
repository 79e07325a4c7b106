package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"opencourse_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain. Order matters: recovery
// first so panics in later handlers are caught.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
