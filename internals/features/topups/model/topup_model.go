// file: internals/features/topups/model/topup_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* =========================
   Model: topups
   Top-up saldo lewat payment gateway. Saldo baru benar-benar masuk
   saat webhook settlement memicu transaksi credit di ledger.
   ========================= */

const (
	TopupStatusPending = "pending"
	TopupStatusPaid    = "paid"
	TopupStatusFailed  = "failed"
)

type Topup struct {
	TopupID uuid.UUID `json:"topup_id" gorm:"column:topup_id;type:uuid;primaryKey"`

	TopupMemberID  uuid.UUID `json:"topup_member_id"  gorm:"column:topup_member_id;type:uuid;not null;index"`
	TopupMessID    uuid.UUID `json:"topup_mess_id"    gorm:"column:topup_mess_id;type:uuid;not null;index"`
	TopupAccountID uuid.UUID `json:"topup_account_id" gorm:"column:topup_account_id;type:uuid;not null;index"`

	TopupAmount decimal.Decimal `json:"topup_amount" gorm:"column:topup_amount;type:numeric(14,2);not null"`
	TopupStatus string          `json:"topup_status" gorm:"column:topup_status;type:varchar(20);not null;default:pending;index"`

	TopupOrderID        string `json:"topup_order_id" gorm:"column:topup_order_id;type:varchar(60);not null;uniqueIndex:uq_topup_order_id"`
	TopupPaymentGateway string `json:"topup_payment_gateway" gorm:"column:topup_payment_gateway;type:varchar(20);not null;default:midtrans"`
	TopupPaymentToken   string `json:"topup_payment_token,omitempty" gorm:"column:topup_payment_token;type:varchar(120)"`

	TopupCreatedAt time.Time `json:"topup_created_at" gorm:"column:topup_created_at;autoCreateTime;not null"`
	TopupUpdatedAt time.Time `json:"topup_updated_at" gorm:"column:topup_updated_at;autoUpdateTime;not null"`
}

func (Topup) TableName() string { return "topups" }

func (t *Topup) BeforeCreate(tx *gorm.DB) error {
	if t.TopupID == uuid.Nil {
		t.TopupID = uuid.New()
	}
	return nil
}

func (t *Topup) IsPending() bool { return t.TopupStatus == TopupStatusPending }
