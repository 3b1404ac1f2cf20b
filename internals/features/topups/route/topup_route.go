// file: internals/features/topups/route/topup_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	topupController "messku_backend/internals/features/topups/controller"
)

// Rute user: buat & lihat top-up milik sendiri.
func UserTopupRoutes(r fiber.Router, db *gorm.DB) {
	ctl := topupController.NewTopupController(db)

	topups := r.Group("/topups")
	topups.Post("/", ctl.Create)
	topups.Get("/", ctl.List)
}

// Webhook gateway: tanpa auth JWT, dilindungi rate limiter khusus.
func WebhookTopupRoutes(r fiber.Router, db *gorm.DB) {
	ctl := topupController.NewTopupController(db)
	r.Post("/topups/midtrans/webhook", ctl.HandleMidtransNotification)
}
