// file: internals/features/expenses/model/expense_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Model: expenses
   Hanya grocery yang approved (dan belum dihapus) yang ikut
   perhitungan tarif per-meal di laporan.
   ========================= */

const (
	ExpenseCategoryGrocery     = "grocery"
	ExpenseCategoryUtility     = "utility"
	ExpenseCategoryMaintenance = "maintenance"
)

const (
	ExpenseStatusPending  = "pending"
	ExpenseStatusApproved = "approved"
	ExpenseStatusRejected = "rejected"
)

func IsValidExpenseCategory(c string) bool {
	switch c {
	case ExpenseCategoryGrocery, ExpenseCategoryUtility, ExpenseCategoryMaintenance:
		return true
	}
	return false
}

func IsValidExpenseStatus(s string) bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusRejected:
		return true
	}
	return false
}

type Expense struct {
	ExpenseID uuid.UUID `json:"expense_id" gorm:"column:expense_id;type:uuid;primaryKey"`

	ExpenseMessID uuid.UUID `json:"expense_mess_id" gorm:"column:expense_mess_id;type:uuid;not null;index"`

	ExpenseCategory string          `json:"expense_category" gorm:"column:expense_category;type:varchar(20);not null;index"`
	ExpenseStatus   string          `json:"expense_status"   gorm:"column:expense_status;type:varchar(20);not null;default:pending;index"`
	ExpenseAmount   decimal.Decimal `json:"expense_amount"   gorm:"column:expense_amount;type:numeric(14,2);not null"`

	ExpenseDescription string    `json:"expense_description" gorm:"column:expense_description;type:varchar(255)"`
	ExpenseDate        time.Time `json:"expense_date"        gorm:"column:expense_date;not null;index"`

	// rincian belanja untuk grocery, array JSON {name, qty, price}
	ExpenseItems datatypes.JSON `json:"expense_items,omitempty" gorm:"column:expense_items;type:jsonb"`

	// label bebas untuk filter ("bulanan", "lebaran", dst)
	ExpenseTags pq.StringArray `json:"expense_tags,omitempty" gorm:"column:expense_tags;type:text[]"`

	ExpenseCreatedBy  uuid.UUID  `json:"expense_created_by" gorm:"column:expense_created_by;type:uuid;not null"`
	ExpenseReviewedBy *uuid.UUID `json:"expense_reviewed_by,omitempty" gorm:"column:expense_reviewed_by;type:uuid"`

	ExpenseCreatedAt time.Time  `json:"expense_created_at" gorm:"column:expense_created_at;autoCreateTime;not null"`
	ExpenseUpdatedAt time.Time  `json:"expense_updated_at" gorm:"column:expense_updated_at;autoUpdateTime;not null"`
	ExpenseDeletedAt *time.Time `json:"expense_deleted_at,omitempty" gorm:"column:expense_deleted_at;index"`
}

func (Expense) TableName() string { return "expenses" }

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ExpenseID == uuid.Nil {
		e.ExpenseID = uuid.New()
	}
	return nil
}

func (e *Expense) IsAlive() bool   { return e.ExpenseDeletedAt == nil }
func (e *Expense) IsPending() bool { return e.ExpenseStatus == ExpenseStatusPending }

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("expense_deleted_at IS NULL")
}
