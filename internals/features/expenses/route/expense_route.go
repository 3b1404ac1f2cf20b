// file: internals/features/expenses/route/expense_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	expenseController "messku_backend/internals/features/expenses/controller"
)

// Rute user biasa: catat & lihat pengeluaran mess sendiri.
func UserExpenseRoutes(r fiber.Router, db *gorm.DB) {
	ctl := expenseController.NewExpenseController(db)

	expenses := r.Group("/expenses")
	expenses.Post("/", ctl.Create)
	expenses.Get("/", ctl.List)
	expenses.Get("/:id", ctl.GetByID)
	expenses.Patch("/:id", ctl.Patch)
}

// Rute admin/manager: review & hapus.
func AdminExpenseRoutes(r fiber.Router, db *gorm.DB) {
	ctl := expenseController.NewExpenseController(db)

	expenses := r.Group("/expenses")
	expenses.Post("/", ctl.Create)
	expenses.Get("/", ctl.List)
	expenses.Get("/:id", ctl.GetByID)
	expenses.Patch("/:id", ctl.Patch)
	expenses.Post("/:id/approve", ctl.Approve)
	expenses.Post("/:id/reject", ctl.Reject)
	expenses.Delete("/:id", ctl.Delete)
}
