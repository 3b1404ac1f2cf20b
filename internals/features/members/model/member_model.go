// file: internals/features/members/model/member_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"messku_backend/internals/constants"
)

/* =========================
   Model: members
   Satu baris = satu keanggotaan user di sebuah mess.
   ========================= */

type Member struct {
	MemberID uuid.UUID `json:"member_id" gorm:"column:member_id;type:uuid;primaryKey"`

	// tenant scope
	MemberMessID uuid.UUID `json:"member_mess_id" gorm:"column:member_mess_id;type:uuid;not null;index"`

	MemberName  string `json:"member_name"  gorm:"column:member_name;type:varchar(120);not null"`
	MemberEmail string `json:"member_email" gorm:"column:member_email;type:varchar(160);not null;uniqueIndex:uq_member_email,where:member_deleted_at IS NULL"`
	MemberPhone *string `json:"member_phone,omitempty" gorm:"column:member_phone;type:varchar(30)"`

	MemberRole string `json:"member_role" gorm:"column:member_role;type:varchar(20);not null;default:member"`

	// gerbang status keanggotaan
	MemberIsApproved bool `json:"member_is_approved" gorm:"column:member_is_approved;not null;default:false"`
	MemberIsVerified bool `json:"member_is_verified" gorm:"column:member_is_verified;not null;default:false"`
	MemberIsBlocked  bool `json:"member_is_blocked"  gorm:"column:member_is_blocked;not null;default:false"`

	MemberCreatedAt time.Time  `json:"member_created_at" gorm:"column:member_created_at;autoCreateTime;not null"`
	MemberUpdatedAt time.Time  `json:"member_updated_at" gorm:"column:member_updated_at;autoUpdateTime;not null"`
	MemberDeletedAt *time.Time `json:"member_deleted_at,omitempty" gorm:"column:member_deleted_at"`
}

func (Member) TableName() string { return "members" }

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.MemberID == uuid.Nil {
		m.MemberID = uuid.New()
	}
	if m.MemberRole == "" {
		m.MemberRole = constants.RoleMember
	}
	return nil
}

// Eligible: boleh ikut makan & di-generate jatah bulanan.
func (m *Member) Eligible() bool {
	return m.MemberIsApproved && m.MemberIsVerified && !m.MemberIsBlocked && m.MemberDeletedAt == nil
}

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("member_deleted_at IS NULL")
}
