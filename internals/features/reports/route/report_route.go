// file: internals/features/reports/route/report_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "messku_backend/internals/features/reports/controller"
)

// Laporan bisa diakses member biasa (terkunci ke mess sendiri)
// maupun admin/manager (lintas mess).
func ReportRoutes(r fiber.Router, db *gorm.DB) {
	ctl := reportController.NewReportController(db)

	reports := r.Group("/reports")
	reports.Get("/meals", ctl.MealReport)
	reports.Get("/users-meals", ctl.UsersMealReport)
}
