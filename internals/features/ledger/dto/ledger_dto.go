// file: internals/features/ledger/dto/ledger_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"messku_backend/internals/features/ledger/model"
	"messku_backend/internals/helpers/dates"
)

/* ===================== REQUEST ===================== */

type CreateAccountRequest struct {
	AccountMemberID uuid.UUID `json:"account_member_id" validate:"required"`
	AccountMessID   uuid.UUID `json:"account_mess_id"   validate:"required"`
}

type CreateTransactionRequest struct {
	TransactionAccountID   uuid.UUID       `json:"transaction_account_id" validate:"required"`
	TransactionAmount      decimal.Decimal `json:"transaction_amount"     validate:"required"`
	TransactionType        string          `json:"transaction_type"       validate:"required,oneof=credit debit"`
	TransactionDescription string          `json:"transaction_description" validate:"omitempty,max=255"`
	TransactionDate        string          `json:"transaction_date"       validate:"omitempty"` // YYYY-MM-DD, default hari ini
}

func (r *CreateTransactionRequest) Date(now time.Time) (time.Time, error) {
	if r.TransactionDate == "" {
		return dates.TruncateToDay(now), nil
	}
	return dates.ParseYMD(r.TransactionDate)
}

/* ===================== RESPONSE ===================== */

type AccountResponse struct {
	AccountID        uuid.UUID `json:"account_id"`
	AccountMemberID  uuid.UUID `json:"account_member_id"`
	AccountMessID    uuid.UUID `json:"account_mess_id"`
	AccountBalance   string    `json:"account_balance"`
	AccountCreatedBy uuid.UUID `json:"account_created_by"`
	AccountCreatedAt time.Time `json:"account_created_at"`
	AccountUpdatedAt time.Time `json:"account_updated_at"`
}

func FromModelAccount(m *model.Account) AccountResponse {
	return AccountResponse{
		AccountID:        m.AccountID,
		AccountMemberID:  m.AccountMemberID,
		AccountMessID:    m.AccountMessID,
		AccountBalance:   m.AccountBalance.StringFixed(2),
		AccountCreatedBy: m.AccountCreatedBy,
		AccountCreatedAt: m.AccountCreatedAt,
		AccountUpdatedAt: m.AccountUpdatedAt,
	}
}

func FromModelAccounts(rows []model.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModelAccount(&rows[i]))
	}
	return out
}

type TransactionResponse struct {
	TransactionID           uuid.UUID `json:"transaction_id"`
	TransactionAccountID    uuid.UUID `json:"transaction_account_id"`
	TransactionMessID       uuid.UUID `json:"transaction_mess_id"`
	TransactionAmount       string    `json:"transaction_amount"`
	TransactionType         string    `json:"transaction_type"`
	TransactionBalanceAfter string    `json:"transaction_balance_after"`
	TransactionDescription  string    `json:"transaction_description,omitempty"`
	TransactionDate         string    `json:"transaction_date"`
	TransactionCreatedBy    uuid.UUID `json:"transaction_created_by"`
	TransactionCreatedAt    time.Time `json:"transaction_created_at"`
}

func FromModelTransaction(m *model.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:           m.TransactionID,
		TransactionAccountID:    m.TransactionAccountID,
		TransactionMessID:       m.TransactionMessID,
		TransactionAmount:       m.TransactionAmount.StringFixed(2),
		TransactionType:         m.TransactionType,
		TransactionBalanceAfter: m.TransactionBalanceAfter.StringFixed(2),
		TransactionDescription:  m.TransactionDescription,
		TransactionDate:         dates.FormatYMD(m.TransactionDate),
		TransactionCreatedBy:    m.TransactionCreatedBy,
		TransactionCreatedAt:    m.TransactionCreatedAt,
	}
}

func FromModelTransactions(rows []model.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModelTransaction(&rows[i]))
	}
	return out
}
