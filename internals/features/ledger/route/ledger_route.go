// file: internals/features/ledger/route/ledger_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ledgerController "messku_backend/internals/features/ledger/controller"
)

// Rute user biasa: lihat account & riwayat transaksi milik sendiri.
func UserLedgerRoutes(r fiber.Router, db *gorm.DB) {
	ctl := ledgerController.NewLedgerController(db)

	accounts := r.Group("/accounts")
	accounts.Get("/:id", ctl.GetAccount)
	accounts.Get("/:id/transactions", ctl.ListTransactions)
}

// Rute admin/manager: kelola account & catat transaksi.
func AdminLedgerRoutes(r fiber.Router, db *gorm.DB) {
	ctl := ledgerController.NewLedgerController(db)

	accounts := r.Group("/accounts")
	accounts.Post("/", ctl.CreateAccount)
	accounts.Get("/", ctl.ListAccounts)
	accounts.Get("/:id", ctl.GetAccount)
	accounts.Get("/:id/transactions", ctl.ListTransactions)
	accounts.Delete("/:id", ctl.DeleteAccount)

	r.Post("/transactions", ctl.CreateTransaction)
}
