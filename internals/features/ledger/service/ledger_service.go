// file: internals/features/ledger/service/ledger_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	activity "messku_backend/internals/features/activity/service"
	"messku_backend/internals/features/ledger/model"
	memberService "messku_backend/internals/features/members/service"
	messModel "messku_backend/internals/features/messes/model"
	"messku_backend/internals/helpers/errs"
)

// Actor: identitas pemanggil yang sudah diresolve upstream.
type Actor struct {
	MemberID   uuid.UUID
	MessID     uuid.UUID
	Privileged bool
	Admin      bool
}

type LedgerService struct {
	DB      *gorm.DB
	Members *memberService.Directory
	Now     func() time.Time
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{
		DB:      db,
		Members: memberService.NewDirectory(db),
		Now:     time.Now,
	}
}

/* =========================
   Create account
   ========================= */

// CreateAccount: dibuat sekali oleh role privileged setelah membership
// terverifikasi. Saldo awal selalu 0.
func (s *LedgerService) CreateAccount(actor Actor, memberID, messID uuid.UUID) (*model.Account, error) {
	if !actor.Privileged {
		return nil, errs.Forbidden("hanya admin/manager yang boleh membuat account")
	}

	var acc *model.Account
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var mess messModel.Mess
		if err := messModel.ScopeAlive(tx).First(&mess, "mess_id = ?", messID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("mess tidak ditemukan")
			}
			return err
		}

		if _, err := s.Members.RequireApprovedOfMess(tx, memberID, messID); err != nil {
			return err
		}

		var existing int64
		if err := model.ScopeAliveAccount(tx.Model(&model.Account{})).
			Where("account_member_id = ? AND account_mess_id = ?", memberID, messID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errs.Conflict("account untuk member ini sudah ada")
		}

		row := model.Account{
			AccountMemberID:  memberID,
			AccountMessID:    messID,
			AccountBalance:   decimal.Zero,
			AccountCreatedBy: actor.MemberID,
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return errs.Conflict("account untuk member ini sudah ada")
			}
			return err
		}

		if err := activity.Record(tx, activity.Entry{
			MessID:      messID,
			Entity:      "account",
			EntityID:    row.AccountID,
			Action:      "created",
			PerformedBy: actor.MemberID,
		}); err != nil {
			return err
		}

		acc = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

/* =========================
   Create transaction
   ========================= */

type CreateTransactionInput struct {
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Type        string
	Description string
	Date        time.Time
}

// balanceRetries: berapa kali CAS saldo diulang kalau kalah race.
const balanceRetries = 3

var errBalanceRaced = errors.New("balance raced")

// CreateTransaction: SATU-SATUNYA jalur mutasi saldo. Insert transaksi
// dan update saldo commit bersama atau tidak sama sekali.
func (s *LedgerService) CreateTransaction(actor Actor, in CreateTransactionInput) (*model.Transaction, error) {
	if !actor.Privileged {
		return nil, errs.Forbidden("hanya admin/manager yang boleh mencatat transaksi")
	}
	if !model.IsValidTransactionType(in.Type) {
		return nil, errs.InvalidStatus("transaction_type harus credit atau debit")
	}
	if !in.Amount.IsPositive() {
		return nil, errs.InvalidStatus("transaction_amount harus > 0")
	}

	var trx *model.Transaction
	var lastErr error
	for attempt := 0; attempt < balanceRetries; attempt++ {
		trx = nil
		lastErr = s.DB.Transaction(func(tx *gorm.DB) error {
			var acc model.Account
			if err := model.ScopeAliveAccount(tx).First(&acc, "account_id = ?", in.AccountID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errs.NotFound("account tidak ditemukan")
				}
				return err
			}

			if _, err := s.Members.RequireApprovedOfMess(tx, actor.MemberID, acc.AccountMessID); err != nil {
				return err
			}

			newBalance := acc.AccountBalance.Add(in.Amount)
			if in.Type == model.TransactionTypeDebit {
				newBalance = acc.AccountBalance.Sub(in.Amount)
			}
			if newBalance.IsNegative() {
				return errs.InsufficientBalance("saldo tidak cukup untuk debit ini")
			}

			row := model.Transaction{
				TransactionAccountID:    acc.AccountID,
				TransactionMessID:       acc.AccountMessID,
				TransactionAmount:       in.Amount,
				TransactionType:         in.Type,
				TransactionBalanceAfter: newBalance,
				TransactionDescription:  strings.TrimSpace(in.Description),
				TransactionDate:         in.Date,
				TransactionCreatedBy:    actor.MemberID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}

			// compare-and-swap: hanya menang kalau saldo belum berubah
			// sejak dibaca di atas
			res := tx.Model(&model.Account{}).
				Where("account_id = ? AND account_deleted_at IS NULL AND account_balance = ?",
					acc.AccountID, acc.AccountBalance).
				Update("account_balance", newBalance)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errBalanceRaced
			}

			if err := activity.Record(tx, activity.Entry{
				MessID:      acc.AccountMessID,
				Entity:      "transaction",
				EntityID:    row.TransactionID,
				Action:      "created",
				PerformedBy: actor.MemberID,
				Metadata: map[string]any{
					"type":          in.Type,
					"amount":        in.Amount.StringFixed(2),
					"balance_after": newBalance.StringFixed(2),
				},
			}); err != nil {
				return err
			}

			trx = &row
			return nil
		})
		if !errors.Is(lastErr, errBalanceRaced) {
			break
		}
	}
	if lastErr != nil {
		if errors.Is(lastErr, errBalanceRaced) {
			return nil, errs.Conflict("transaksi bentrok, coba lagi")
		}
		return nil, lastErr
	}
	return trx, nil
}

/* =========================
   Soft delete account
   ========================= */

// SoftDeleteAccount: admin only (lebih ketat dari create). Saldo dan
// riwayat transaksi tetap tersimpan untuk audit.
func (s *LedgerService) SoftDeleteAccount(actor Actor, accountID uuid.UUID) error {
	if !actor.Admin {
		return errs.Forbidden("hanya admin yang boleh menghapus account")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var acc model.Account
		if err := model.ScopeAliveAccount(tx).First(&acc, "account_id = ?", accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("account tidak ditemukan")
			}
			return err
		}

		now := s.Now()
		if err := tx.Model(&model.Account{}).
			Where("account_id = ?", acc.AccountID).
			Update("account_deleted_at", &now).Error; err != nil {
			return err
		}

		return activity.Record(tx, activity.Entry{
			MessID:      acc.AccountMessID,
			Entity:      "account",
			EntityID:    acc.AccountID,
			Action:      "deleted",
			PerformedBy: actor.MemberID,
		})
	})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
