// file: internals/features/topups/dto/topup_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"messku_backend/internals/features/topups/model"
)

/* ===================== REQUEST ===================== */

type CreateTopupRequest struct {
	TopupAccountID uuid.UUID       `json:"topup_account_id" validate:"required"`
	TopupAmount    decimal.Decimal `json:"topup_amount"     validate:"required"`
}

// MidtransNotification: subset field notifikasi yang kita pakai.
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
}

/* ===================== RESPONSE ===================== */

type TopupResponse struct {
	TopupID           uuid.UUID `json:"topup_id"`
	TopupMemberID     uuid.UUID `json:"topup_member_id"`
	TopupMessID       uuid.UUID `json:"topup_mess_id"`
	TopupAccountID    uuid.UUID `json:"topup_account_id"`
	TopupAmount       string    `json:"topup_amount"`
	TopupStatus       string    `json:"topup_status"`
	TopupOrderID      string    `json:"topup_order_id"`
	TopupPaymentToken string    `json:"topup_payment_token,omitempty"`
	TopupCreatedAt    time.Time `json:"topup_created_at"`
}

func FromModelTopup(m *model.Topup) TopupResponse {
	return TopupResponse{
		TopupID:           m.TopupID,
		TopupMemberID:     m.TopupMemberID,
		TopupMessID:       m.TopupMessID,
		TopupAccountID:    m.TopupAccountID,
		TopupAmount:       m.TopupAmount.StringFixed(2),
		TopupStatus:       m.TopupStatus,
		TopupOrderID:      m.TopupOrderID,
		TopupPaymentToken: m.TopupPaymentToken,
		TopupCreatedAt:    m.TopupCreatedAt,
	}
}

func FromModelTopups(rows []model.Topup) []TopupResponse {
	out := make([]TopupResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModelTopup(&rows[i]))
	}
	return out
}
