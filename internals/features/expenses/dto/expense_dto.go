// file: internals/features/expenses/dto/expense_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"messku_backend/internals/features/expenses/model"
	"messku_backend/internals/helpers/dates"
)

/* ===================== REQUEST ===================== */

type ExpenseItemPayload struct {
	Name  string          `json:"name"  validate:"required,max=100"`
	Qty   int             `json:"qty"   validate:"required,min=1"`
	Price decimal.Decimal `json:"price" validate:"required"`
}

type CreateExpenseRequest struct {
	ExpenseMessID      uuid.UUID            `json:"expense_mess_id"     validate:"required"`
	ExpenseCategory    string               `json:"expense_category"    validate:"required,oneof=grocery utility maintenance"`
	ExpenseAmount      decimal.Decimal      `json:"expense_amount"      validate:"required"`
	ExpenseDescription string               `json:"expense_description" validate:"omitempty,max=255"`
	ExpenseDate        string               `json:"expense_date"        validate:"required"` // YYYY-MM-DD
	ExpenseItems       []ExpenseItemPayload `json:"expense_items"       validate:"omitempty,dive"`
	ExpenseTags        []string             `json:"expense_tags"        validate:"omitempty,dive,max=40"`
}

func (r *CreateExpenseRequest) ToModel(createdBy uuid.UUID) (*model.Expense, error) {
	date, err := dates.ParseYMD(r.ExpenseDate)
	if err != nil {
		return nil, err
	}

	row := &model.Expense{
		ExpenseMessID:      r.ExpenseMessID,
		ExpenseCategory:    r.ExpenseCategory,
		ExpenseStatus:      model.ExpenseStatusPending,
		ExpenseAmount:      r.ExpenseAmount,
		ExpenseDescription: strings.TrimSpace(r.ExpenseDescription),
		ExpenseDate:        date,
		ExpenseCreatedBy:   createdBy,
	}
	if len(r.ExpenseItems) > 0 {
		if b, err := json.Marshal(r.ExpenseItems); err == nil {
			row.ExpenseItems = datatypes.JSON(b)
		}
	}
	if len(r.ExpenseTags) > 0 {
		row.ExpenseTags = pq.StringArray(normalizeTags(r.ExpenseTags))
	}
	return row, nil
}

func normalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

type PatchExpenseRequest struct {
	ExpenseCategory    *string              `json:"expense_category"    validate:"omitempty,oneof=grocery utility maintenance"`
	ExpenseAmount      *decimal.Decimal     `json:"expense_amount"      validate:"omitempty"`
	ExpenseDescription *string              `json:"expense_description" validate:"omitempty,max=255"`
	ExpenseDate        *string              `json:"expense_date"        validate:"omitempty"`
	ExpenseItems       []ExpenseItemPayload `json:"expense_items"       validate:"omitempty,dive"`
	ExpenseTags        []string             `json:"expense_tags"        validate:"omitempty,dive,max=40"`
}

func (r *PatchExpenseRequest) ApplyTo(m *model.Expense) error {
	if r.ExpenseCategory != nil {
		m.ExpenseCategory = *r.ExpenseCategory
	}
	if r.ExpenseAmount != nil {
		m.ExpenseAmount = *r.ExpenseAmount
	}
	if r.ExpenseDescription != nil {
		m.ExpenseDescription = strings.TrimSpace(*r.ExpenseDescription)
	}
	if r.ExpenseDate != nil {
		date, err := dates.ParseYMD(*r.ExpenseDate)
		if err != nil {
			return err
		}
		m.ExpenseDate = date
	}
	if r.ExpenseItems != nil {
		if b, err := json.Marshal(r.ExpenseItems); err == nil {
			m.ExpenseItems = datatypes.JSON(b)
		}
	}
	if r.ExpenseTags != nil {
		m.ExpenseTags = pq.StringArray(normalizeTags(r.ExpenseTags))
	}
	return nil
}

/* ===================== RESPONSE ===================== */

type ExpenseResponse struct {
	ExpenseID          uuid.UUID       `json:"expense_id"`
	ExpenseMessID      uuid.UUID       `json:"expense_mess_id"`
	ExpenseCategory    string          `json:"expense_category"`
	ExpenseStatus      string          `json:"expense_status"`
	ExpenseAmount      string          `json:"expense_amount"`
	ExpenseDescription string          `json:"expense_description,omitempty"`
	ExpenseDate        string          `json:"expense_date"`
	ExpenseItems       json.RawMessage `json:"expense_items,omitempty"`
	ExpenseTags        []string        `json:"expense_tags,omitempty"`
	ExpenseCreatedBy   uuid.UUID       `json:"expense_created_by"`
	ExpenseReviewedBy  *uuid.UUID      `json:"expense_reviewed_by,omitempty"`
	ExpenseCreatedAt   time.Time       `json:"expense_created_at"`
	ExpenseUpdatedAt   time.Time       `json:"expense_updated_at"`
}

func FromModelExpense(m *model.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:          m.ExpenseID,
		ExpenseMessID:      m.ExpenseMessID,
		ExpenseCategory:    m.ExpenseCategory,
		ExpenseStatus:      m.ExpenseStatus,
		ExpenseAmount:      m.ExpenseAmount.StringFixed(2),
		ExpenseDescription: m.ExpenseDescription,
		ExpenseDate:        dates.FormatYMD(m.ExpenseDate),
		ExpenseItems:       json.RawMessage(m.ExpenseItems),
		ExpenseTags:        []string(m.ExpenseTags),
		ExpenseCreatedBy:   m.ExpenseCreatedBy,
		ExpenseReviewedBy:  m.ExpenseReviewedBy,
		ExpenseCreatedAt:   m.ExpenseCreatedAt,
		ExpenseUpdatedAt:   m.ExpenseUpdatedAt,
	}
}

func FromModelExpenses(rows []model.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModelExpense(&rows[i]))
	}
	return out
}
