// file: internals/features/meals/route/meal_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	mealController "messku_backend/internals/features/meals/controller"
)

// Rute user biasa: kelola catatan makan milik sendiri.
func UserMealRoutes(r fiber.Router, db *gorm.DB) {
	ctl := mealController.NewMealController(db)

	meals := r.Group("/meals")
	meals.Post("/", ctl.Create)
	meals.Post("/toggle", ctl.ToggleRange)
	meals.Get("/", ctl.List)
	meals.Get("/:id", ctl.GetByID)
	meals.Patch("/:id", ctl.Patch)
}

// Rute admin/manager: termasuk hapus catatan.
func AdminMealRoutes(r fiber.Router, db *gorm.DB) {
	ctl := mealController.NewMealController(db)

	meals := r.Group("/meals")
	meals.Post("/", ctl.Create)
	meals.Post("/toggle", ctl.ToggleRange)
	meals.Patch("/:id", ctl.Patch)
	meals.Delete("/:id", ctl.Delete)
}
