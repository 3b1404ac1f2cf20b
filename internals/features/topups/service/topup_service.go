// file: internals/features/topups/service/topup_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ledgerModel "messku_backend/internals/features/ledger/model"
	ledgerService "messku_backend/internals/features/ledger/service"
	memberService "messku_backend/internals/features/members/service"
	"messku_backend/internals/features/topups/model"
	"messku_backend/internals/helpers/errs"
)

type TopupService struct {
	DB      *gorm.DB
	Members *memberService.Directory
	Now     func() time.Time
}

func NewTopupService(db *gorm.DB) *TopupService {
	return &TopupService{
		DB:      db,
		Members: memberService.NewDirectory(db),
		Now:     time.Now,
	}
}

/* =========================
   Create top-up (pending)
   ========================= */

type CreateTopupInput struct {
	MemberID  uuid.UUID
	AccountID uuid.UUID
	Amount    decimal.Decimal
}

// CreateTopup membuat order pending. Saldo BELUM berubah di sini.
func (s *TopupService) CreateTopup(in CreateTopupInput) (*model.Topup, error) {
	if !in.Amount.IsPositive() {
		return nil, errs.InvalidStatus("topup_amount harus > 0")
	}

	var acc ledgerModel.Account
	if err := ledgerModel.ScopeAliveAccount(s.DB).First(&acc, "account_id = ?", in.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("account tidak ditemukan")
		}
		return nil, err
	}
	if acc.AccountMemberID != in.MemberID {
		return nil, errs.Forbidden("hanya boleh top-up account sendiri")
	}
	if _, err := s.Members.RequireApprovedOfMess(s.DB, in.MemberID, acc.AccountMessID); err != nil {
		return nil, err
	}

	row := model.Topup{
		TopupMemberID:       in.MemberID,
		TopupMessID:         acc.AccountMessID,
		TopupAccountID:      acc.AccountID,
		TopupAmount:         in.Amount,
		TopupStatus:         model.TopupStatusPending,
		TopupOrderID:        fmt.Sprintf("TOPUP-%d", s.Now().UnixNano()),
		TopupPaymentGateway: "midtrans",
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

/* =========================
   Settlement dari webhook
   ========================= */

// SettleByOrderID memproses notifikasi gateway. Idempotent: order yang
// sudah keluar dari pending tidak diproses dua kali. Credit ledger dan
// perubahan status commit bersama.
func (s *TopupService) SettleByOrderID(orderID, transactionStatus string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var t model.Topup
		if err := tx.First(&t, "topup_order_id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("top-up tidak ditemukan")
			}
			return err
		}
		if !t.IsPending() {
			return nil
		}

		switch transactionStatus {
		case "settlement", "capture", "success":
			t.TopupStatus = model.TopupStatusPaid
		case "deny", "cancel", "expire", "failure":
			t.TopupStatus = model.TopupStatusFailed
		default:
			// pending dan status antara lainnya: biarkan
			return nil
		}

		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		if t.TopupStatus != model.TopupStatusPaid {
			return nil
		}

		// settlement diperlakukan sebagai aktor privileged sistem;
		// saldo tetap hanya berubah lewat jalur transaksi ledger
		ledger := ledgerService.NewLedgerService(tx)
		_, err := ledger.CreateTransaction(ledgerService.Actor{
			MemberID:   t.TopupMemberID,
			MessID:     t.TopupMessID,
			Privileged: true,
		}, ledgerService.CreateTransactionInput{
			AccountID:   t.TopupAccountID,
			Amount:      t.TopupAmount,
			Type:        ledgerModel.TransactionTypeCredit,
			Description: "top-up " + t.TopupOrderID,
			Date:        s.Now(),
		})
		return err
	})
}
