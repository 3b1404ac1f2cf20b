// file: internals/features/members/service/directory.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"messku_backend/internals/features/members/model"
	"messku_backend/internals/helpers/errs"
)

// Directory: kontrak membership directory yang dipakai meals/ledger/reports.
type Directory struct {
	DB *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory { return &Directory{DB: db} }

// FindMember mengembalikan member yang masih alive.
func (d *Directory) FindMember(tx *gorm.DB, id uuid.UUID) (*model.Member, error) {
	if tx == nil {
		tx = d.DB
	}
	var m model.Member
	if err := model.ScopeAlive(tx).First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("member tidak ditemukan")
		}
		return nil, err
	}
	return &m, nil
}

// RequireApprovedOfMess: member harus alive, approved, dan anggota mess tsb.
func (d *Directory) RequireApprovedOfMess(tx *gorm.DB, memberID, messID uuid.UUID) (*model.Member, error) {
	m, err := d.FindMember(tx, memberID)
	if err != nil {
		return nil, err
	}
	if m.MemberMessID != messID {
		return nil, errs.Forbidden("member bukan anggota mess ini")
	}
	if !m.MemberIsApproved {
		return nil, errs.NotApproved("keanggotaan belum di-approve")
	}
	return m, nil
}

// EligibleMembersOfMess: approved + verified + tidak diblokir, untuk generator bulanan.
func (d *Directory) EligibleMembersOfMess(tx *gorm.DB, messID uuid.UUID) ([]model.Member, error) {
	if tx == nil {
		tx = d.DB
	}
	var rows []model.Member
	err := model.ScopeAlive(tx).
		Where("member_mess_id = ?", messID).
		Where("member_is_approved AND member_is_verified AND NOT member_is_blocked").
		Order("member_created_at asc").
		Find(&rows).Error
	return rows, err
}
