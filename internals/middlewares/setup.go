// file: internals/middlewares/setup.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares memasang middleware dasar (urutan penting: recovery paling luar).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
