// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	expenseRoute "messku_backend/internals/features/expenses/route"
	ledgerRoute "messku_backend/internals/features/ledger/route"
	mealRoute "messku_backend/internals/features/meals/route"
	memberRoute "messku_backend/internals/features/members/route"
	messRoute "messku_backend/internals/features/messes/route"
	reportRoute "messku_backend/internals/features/reports/route"
	topupRoute "messku_backend/internals/features/topups/route"
	middlewares "messku_backend/internals/middlewares"
	auth "messku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== WEBHOOK (tanpa JWT) =====================
	log.Println("[INFO] Setting up WEBHOOK routes...")
	webhook := app.Group("/api", middlewares.WebhookRateLimiter())
	topupRoute.WebhookTopupRoutes(webhook, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", auth.AuthMiddleware())

	messRoute.UserMessRoutes(user, db)
	memberRoute.UserMemberRoutes(user, db)
	mealRoute.UserMealRoutes(user, db)
	ledgerRoute.UserLedgerRoutes(user, db)
	expenseRoute.UserExpenseRoutes(user, db)
	reportRoute.ReportRoutes(user, db)
	topupRoute.UserTopupRoutes(user, db)

	// ===================== ADMIN / MANAGER =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", auth.AuthMiddleware())

	messRoute.AdminMessRoutes(admin, db)
	memberRoute.AdminMemberRoutes(admin, db)
	mealRoute.AdminMealRoutes(admin, db)
	ledgerRoute.AdminLedgerRoutes(admin, db)
	expenseRoute.AdminExpenseRoutes(admin, db)
	reportRoute.ReportRoutes(admin, db)
}
