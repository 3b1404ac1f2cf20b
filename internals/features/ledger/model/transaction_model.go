// file: internals/features/ledger/model/transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* =========================
   Model: transactions
   Append-only. Tidak ada update/delete setelah commit.
   ========================= */

const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

func IsValidTransactionType(t string) bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

type Transaction struct {
	TransactionID uuid.UUID `json:"transaction_id" gorm:"column:transaction_id;type:uuid;primaryKey"`

	TransactionAccountID uuid.UUID `json:"transaction_account_id" gorm:"column:transaction_account_id;type:uuid;not null;index"`
	TransactionMessID    uuid.UUID `json:"transaction_mess_id"    gorm:"column:transaction_mess_id;type:uuid;not null;index"`

	TransactionAmount decimal.Decimal `json:"transaction_amount" gorm:"column:transaction_amount;type:numeric(14,2);not null"`
	TransactionType   string          `json:"transaction_type"   gorm:"column:transaction_type;type:varchar(10);not null"`

	// saldo account tepat setelah transaksi ini commit
	TransactionBalanceAfter decimal.Decimal `json:"transaction_balance_after" gorm:"column:transaction_balance_after;type:numeric(14,2);not null"`

	TransactionDescription string    `json:"transaction_description" gorm:"column:transaction_description;type:varchar(255)"`
	TransactionDate        time.Time `json:"transaction_date"        gorm:"column:transaction_date;not null;index"`
	TransactionCreatedBy   uuid.UUID `json:"transaction_created_by"  gorm:"column:transaction_created_by;type:uuid;not null"`

	TransactionCreatedAt time.Time `json:"transaction_created_at" gorm:"column:transaction_created_at;autoCreateTime;not null"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TransactionID == uuid.Nil {
		t.TransactionID = uuid.New()
	}
	return nil
}
