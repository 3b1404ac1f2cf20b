// file: internals/features/messes/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	messController "messku_backend/internals/features/messes/controller"
)

func AdminMessRoutes(r fiber.Router, db *gorm.DB) {
	ctl := messController.NewMessController(db)
	messes := r.Group("/messes")
	{
		messes.Post("/", ctl.Create)
		messes.Patch("/:id", ctl.Patch)
		messes.Delete("/:id", ctl.Delete)
	}
}

func UserMessRoutes(r fiber.Router, db *gorm.DB) {
	ctl := messController.NewMessController(db)
	messes := r.Group("/messes")
	{
		messes.Get("/", ctl.List)
		messes.Get("/:id", ctl.GetByID)
	}
}
