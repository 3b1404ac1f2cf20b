// file: internals/features/messes/model/mess_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessStatusActive   = "active"
	MessStatusInactive = "inactive"
)

/* =========================
   Model: messes
   ========================= */

type Mess struct {
	MessID uuid.UUID `json:"mess_id" gorm:"column:mess_id;type:uuid;primaryKey"`

	MessName string `json:"mess_name" gorm:"column:mess_name;type:varchar(120);not null;uniqueIndex:uq_mess_name,where:mess_deleted_at IS NULL"`

	// kode human-readable dari allocator, monoton naik: MESS-0001, MESS-0002, ...
	MessCode string `json:"mess_code" gorm:"column:mess_code;type:varchar(20);not null;uniqueIndex:uq_mess_code"`

	MessStatus  string  `json:"mess_status" gorm:"column:mess_status;type:varchar(20);not null;default:active"`
	MessAddress *string `json:"mess_address,omitempty" gorm:"column:mess_address;type:text"`

	MessCreatedAt time.Time  `json:"mess_created_at" gorm:"column:mess_created_at;autoCreateTime;not null"`
	MessUpdatedAt time.Time  `json:"mess_updated_at" gorm:"column:mess_updated_at;autoUpdateTime;not null"`
	MessDeletedAt *time.Time `json:"mess_deleted_at,omitempty" gorm:"column:mess_deleted_at"`
}

func (Mess) TableName() string { return "messes" }

func (m *Mess) BeforeCreate(tx *gorm.DB) error {
	if m.MessID == uuid.Nil {
		m.MessID = uuid.New()
	}
	if m.MessStatus == "" {
		m.MessStatus = MessStatusActive
	}
	return nil
}

func (m *Mess) IsAlive() bool  { return m.MessDeletedAt == nil }
func (m *Mess) IsActive() bool { return m.MessStatus == MessStatusActive && m.IsAlive() }

// ScopeAlive: hanya mess yang belum soft-delete.
func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("mess_deleted_at IS NULL")
}
