// file: internals/features/ledger/model/account_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* =========================
   Model: accounts
   Satu account hidup per (member, mess). Saldo hanya boleh berubah
   lewat CreateTransaction — tidak ada jalur tulis langsung lain.
   ========================= */

type Account struct {
	AccountID uuid.UUID `json:"account_id" gorm:"column:account_id;type:uuid;primaryKey"`

	AccountMemberID uuid.UUID `json:"account_member_id" gorm:"column:account_member_id;type:uuid;not null;uniqueIndex:uq_account_member_mess,where:account_deleted_at IS NULL"`
	AccountMessID   uuid.UUID `json:"account_mess_id"   gorm:"column:account_mess_id;type:uuid;not null;uniqueIndex:uq_account_member_mess,where:account_deleted_at IS NULL;index"`

	// numeric(14,2), tidak pernah negatif setelah commit
	AccountBalance decimal.Decimal `json:"account_balance" gorm:"column:account_balance;type:numeric(14,2);not null"`

	AccountCreatedBy uuid.UUID `json:"account_created_by" gorm:"column:account_created_by;type:uuid;not null"`

	AccountCreatedAt time.Time  `json:"account_created_at" gorm:"column:account_created_at;autoCreateTime;not null"`
	AccountUpdatedAt time.Time  `json:"account_updated_at" gorm:"column:account_updated_at;autoUpdateTime;not null"`
	AccountDeletedAt *time.Time `json:"account_deleted_at,omitempty" gorm:"column:account_deleted_at;index"`
}

func (Account) TableName() string { return "accounts" }

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.AccountID == uuid.Nil {
		a.AccountID = uuid.New()
	}
	return nil
}

func (a *Account) IsAlive() bool { return a.AccountDeletedAt == nil }

func ScopeAliveAccount(db *gorm.DB) *gorm.DB {
	return db.Where("account_deleted_at IS NULL")
}
